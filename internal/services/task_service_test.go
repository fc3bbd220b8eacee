package services

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/microin-api/internal/models"
	"github.com/yukikurage/microin-api/internal/repository"
)

type stubRecommender struct {
	tasks      []models.Task
	calls      int
	lastSkills []string
}

func (r *stubRecommender) Recommend(_ context.Context, skills []string) []models.Task {
	r.calls++
	r.lastSkills = skills
	out := make([]models.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// failingStore breaks ListTasks so the merge step can be exercised
type failingStore struct {
	repository.Store
}

func (failingStore) ListTasks(context.Context) ([]models.Task, error) {
	return nil, errors.New("database is locked")
}

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	store       *repository.MemoryStore
	recommender *stubRecommender
	service     *TaskService
}

func (suite *TaskServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = repository.NewMemoryStore()
	suite.recommender = &stubRecommender{}
	suite.service = NewTaskService(suite.store, suite.recommender, log.New(io.Discard, "", 0))

	err := suite.store.Seed(suite.ctx,
		[]models.Task{
			{ID: "t1", Title: "Build a DApp Landing Page", Company: "ChainInnovate", Reward: decimal.NewFromInt(150), RewardToken: "USDC", Status: models.TaskStatusOpen},
		},
		[]models.User{
			{WalletAddress: "0xstudent", Name: "Alex Johnson"},
		},
	)
	suite.Require().NoError(err)
}

func (suite *TaskServiceTestSuite) validInput() CreateTaskInput {
	return CreateTaskInput{
		Title:       "  Write Unit Tests  ",
		Description: " Cover the token contract. ",
		Skills:      []string{" Solidity ", "", "Hardhat"},
		Reward:      decimal.NewFromInt(90),
		Company:     " DeFi Solutions ",
	}
}

func (suite *TaskServiceTestSuite) TestCreateTask_Success() {
	task, err := suite.service.CreateTask(suite.ctx, suite.validInput())

	suite.Require().NoError(err)
	suite.Equal("Write Unit Tests", task.Title)
	suite.Equal("Cover the token contract.", task.Description)
	suite.Equal("DeFi Solutions", task.Company)
	suite.Equal([]string{"Solidity", "Hardhat"}, task.Skills)
	suite.Equal("USDC", task.RewardToken)
	suite.Equal(models.TaskStatusOpen, task.Status)

	tasks, err := suite.service.ListTasks(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(task.ID, tasks[0].ID)
}

func (suite *TaskServiceTestSuite) TestCreateTask_KeepsRewardToken() {
	input := suite.validInput()
	input.RewardToken = "ETH"

	task, err := suite.service.CreateTask(suite.ctx, input)

	suite.Require().NoError(err)
	suite.Equal("ETH", task.RewardToken)
}

func (suite *TaskServiceTestSuite) TestCreateTask_Validation() {
	tests := []struct {
		name   string
		mutate func(*CreateTaskInput)
		want   error
	}{
		{"blank title", func(in *CreateTaskInput) { in.Title = "   " }, ErrTitleRequired},
		{"blank company", func(in *CreateTaskInput) { in.Company = "" }, ErrCompanyRequired},
		{"negative reward", func(in *CreateTaskInput) { in.Reward = decimal.NewFromInt(-1) }, ErrNegativeReward},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			input := suite.validInput()
			tt.mutate(&input)

			_, err := suite.service.CreateTask(suite.ctx, input)

			suite.ErrorIs(err, tt.want)
			suite.ErrorIs(err, ErrValidation)
		})
	}

	tasks, err := suite.service.ListTasks(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(tasks, 1)
}

func (suite *TaskServiceTestSuite) TestApplyToTask() {
	task, err := suite.service.ApplyToTask(suite.ctx, ApplyInput{TaskID: "t1", WalletAddress: " 0xstudent "})

	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusInProgress, task.Status)
	suite.Equal("0xstudent", task.Assignee)
}

func (suite *TaskServiceTestSuite) TestApplyToTask_MissingUserID() {
	_, err := suite.service.ApplyToTask(suite.ctx, ApplyInput{TaskID: "t1"})

	suite.ErrorIs(err, ErrUserIDRequired)
	task, getErr := suite.service.GetTask(suite.ctx, "t1")
	suite.Require().NoError(getErr)
	suite.Equal(models.TaskStatusOpen, task.Status)
}

func (suite *TaskServiceTestSuite) TestApplyToTask_NotFound() {
	_, err := suite.service.ApplyToTask(suite.ctx, ApplyInput{TaskID: "missing", WalletAddress: "0xstudent"})

	suite.ErrorIs(err, repository.ErrNotFound)
}

func (suite *TaskServiceTestSuite) TestApproveTask() {
	_, err := suite.service.ApplyToTask(suite.ctx, ApplyInput{TaskID: "t1", WalletAddress: "0xstudent"})
	suite.Require().NoError(err)

	result, err := suite.service.ApproveTask(suite.ctx, "t1")

	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusCompleted, result.Task.Status)
	suite.Require().NotNil(result.UpdatedUser)
	suite.Require().Len(result.UpdatedUser.Portfolio, 1)
	suite.Equal("t1", result.UpdatedUser.Portfolio[0].TaskID)
}

func (suite *TaskServiceTestSuite) TestApproveTask_Unassigned() {
	_, err := suite.service.ApproveTask(suite.ctx, "t1")

	suite.ErrorIs(err, repository.ErrTaskNotAssigned)
	suite.ErrorIs(err, repository.ErrNotFound)
}

func (suite *TaskServiceTestSuite) TestGetUser() {
	user, err := suite.service.GetUser(suite.ctx, "0xstudent")
	suite.Require().NoError(err)
	suite.Equal("Alex Johnson", user.Name)

	_, err = suite.service.GetUser(suite.ctx, "0xnobody")
	suite.ErrorIs(err, repository.ErrUserNotFound)

	_, err = suite.service.GetUser(suite.ctx, " ")
	suite.ErrorIs(err, ErrValidation)
}

func (suite *TaskServiceTestSuite) TestRecommendTasks_RequiresSkills() {
	_, err := suite.service.RecommendTasks(suite.ctx, []string{" ", ""})

	suite.ErrorIs(err, ErrSkillsRequired)
	suite.Equal(0, suite.recommender.calls)
}

func (suite *TaskServiceTestSuite) TestRecommendTasks_DropsKnownIDs() {
	suite.recommender.tasks = []models.Task{
		{ID: "t1", Title: "Duplicate of the board", Status: models.TaskStatusOpen},
		{ID: "ai-new", Title: "Fresh Idea", Status: models.TaskStatusOpen},
	}

	tasks, err := suite.service.RecommendTasks(suite.ctx, []string{" React ", "Web3"})

	suite.Require().NoError(err)
	suite.Require().Len(tasks, 1)
	suite.Equal("ai-new", tasks[0].ID)
	suite.Equal([]string{"React", "Web3"}, suite.recommender.lastSkills)
}

func (suite *TaskServiceTestSuite) TestRecommendTasks_EmptyRecommendation() {
	tasks, err := suite.service.RecommendTasks(suite.ctx, []string{"Go"})

	suite.Require().NoError(err)
	suite.NotNil(tasks)
	suite.Empty(tasks)
}

func (suite *TaskServiceTestSuite) TestRecommendTasks_NilRecommender() {
	service := NewTaskService(suite.store, nil, nil)

	tasks, err := service.RecommendTasks(suite.ctx, []string{"Go"})

	suite.Require().NoError(err)
	suite.NotNil(tasks)
	suite.Empty(tasks)
}

func (suite *TaskServiceTestSuite) TestRecommendTasks_StoreFailureYieldsEmpty() {
	suite.recommender.tasks = []models.Task{{ID: "ai-new", Title: "Fresh Idea"}}
	service := NewTaskService(failingStore{suite.store}, suite.recommender, log.New(io.Discard, "", 0))

	tasks, err := service.RecommendTasks(suite.ctx, []string{"Go"})

	suite.Require().NoError(err)
	suite.Empty(tasks)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}

func TestMergeRecommendations(t *testing.T) {
	existing := []models.Task{{ID: "t1"}, {ID: "t2"}}
	recommended := []models.Task{
		{ID: "t2", Title: "Already listed"},
		{ID: "ai-1", Title: "One", Status: models.TaskStatusCompleted, Assignee: "0xabc"},
		{ID: "ai-1", Title: "One again"},
		{ID: "ai-2", Title: "Two"},
	}

	merged := MergeRecommendations(existing, recommended)

	assert.Len(t, merged, 2)
	assert.Equal(t, "ai-1", merged[0].ID)
	assert.Equal(t, "One", merged[0].Title)
	assert.Equal(t, models.TaskStatusOpen, merged[0].Status)
	assert.Empty(t, merged[0].Assignee)
	assert.Equal(t, "ai-2", merged[1].ID)
}
