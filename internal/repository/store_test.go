package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/microin-api/internal/config"
	"github.com/yukikurage/microin-api/internal/database"
	"github.com/yukikurage/microin-api/internal/models"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, time.May, 1, 12, 30, 0, 0, time.UTC)

// StoreTestSuite runs the same contract against every Store implementation
type StoreTestSuite struct {
	suite.Suite
	newStore func(t *testing.T, opts ...Option) Store

	store Store
	ctx   context.Context
}

func (suite *StoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = suite.newStore(suite.T(), WithClock(func() time.Time { return fixedNow }))
}

func (suite *StoreTestSuite) seedUsers(users ...models.User) {
	suite.Require().NoError(suite.store.Seed(suite.ctx, nil, users))
}

func (suite *StoreTestSuite) createTask(title string) models.Task {
	task, err := suite.store.CreateTask(suite.ctx, TaskInput{
		Title:       title,
		Company:     "Acme",
		Description: "d",
		Skills:      []string{"Go"},
		Reward:      decimal.NewFromInt(100),
		RewardToken: "USDC",
	})
	suite.Require().NoError(err)
	return task
}

func (suite *StoreTestSuite) TestCreateTask_IsOpenAndUnassigned() {
	task := suite.createTask("X")

	assert.NotEmpty(suite.T(), task.ID)
	assert.Equal(suite.T(), models.TaskStatusOpen, task.Status)
	assert.Empty(suite.T(), task.Assignee)
	assert.False(suite.T(), task.IsAssigned())
	assert.Equal(suite.T(), "X", task.Title)
	assert.Equal(suite.T(), "Acme", task.Company)
	assert.Equal(suite.T(), []string{"Go"}, task.Skills)
	assert.True(suite.T(), task.Reward.Equal(decimal.NewFromInt(100)))
	assert.Equal(suite.T(), "USDC", task.RewardToken)

	stored, err := suite.store.GetTask(suite.ctx, task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), task.ID, stored.ID)
	assert.Equal(suite.T(), models.TaskStatusOpen, stored.Status)
}

func (suite *StoreTestSuite) TestCreateTask_DoesNotValidate() {
	task, err := suite.store.CreateTask(suite.ctx, TaskInput{
		Title:  "Negative",
		Reward: decimal.NewFromInt(-5),
	})
	suite.Require().NoError(err)
	assert.True(suite.T(), task.Reward.Equal(decimal.NewFromInt(-5)))
	assert.NotNil(suite.T(), task.Skills)
	assert.Empty(suite.T(), task.Skills)
}

func (suite *StoreTestSuite) TestListTasks_NewestFirst() {
	suite.Require().NoError(suite.store.Seed(suite.ctx, []models.Task{
		{ID: "t1", Title: "Seeded 1", Status: models.TaskStatusOpen},
		{ID: "t2", Title: "Seeded 2", Status: models.TaskStatusCompleted, Assignee: "0xSEED"},
	}, nil))

	first := suite.createTask("first")
	second := suite.createTask("second")

	tasks, err := suite.store.ListTasks(suite.ctx)
	suite.Require().NoError(err)

	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	assert.Equal(suite.T(), []string{second.ID, first.ID, "t1", "t2"}, ids)
}

func (suite *StoreTestSuite) TestListTasks_Empty() {
	tasks, err := suite.store.ListTasks(suite.ctx)
	suite.Require().NoError(err)
	assert.NotNil(suite.T(), tasks)
	assert.Empty(suite.T(), tasks)
}

func (suite *StoreTestSuite) TestGetTask_NotFound() {
	_, err := suite.store.GetTask(suite.ctx, "missing")
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *StoreTestSuite) TestGetUser_NotFound() {
	_, err := suite.store.GetUser(suite.ctx, "0xNOPE")
	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *StoreTestSuite) TestReturnedValuesAreCopies() {
	suite.seedUsers(models.User{WalletAddress: "0xAAA", Name: "Alex", Skills: []string{"Go"}})
	task := suite.createTask("X")

	task.Skills[0] = "Rust"
	user, err := suite.store.GetUser(suite.ctx, "0xAAA")
	suite.Require().NoError(err)
	user.Skills[0] = "Rust"

	storedTask, err := suite.store.GetTask(suite.ctx, task.ID)
	suite.Require().NoError(err)
	storedUser, err := suite.store.GetUser(suite.ctx, "0xAAA")
	suite.Require().NoError(err)

	assert.Equal(suite.T(), []string{"Go"}, storedTask.Skills)
	assert.Equal(suite.T(), []string{"Go"}, storedUser.Skills)
}

func (suite *StoreTestSuite) TestApplyToTask_SetsInProgressAndAssignee() {
	task := suite.createTask("X")

	applied, err := suite.store.ApplyToTask(suite.ctx, task.ID, "0xAAA")
	suite.Require().NoError(err)

	assert.Equal(suite.T(), models.TaskStatusInProgress, applied.Status)
	assert.Equal(suite.T(), "0xAAA", applied.Assignee)

	stored, err := suite.store.GetTask(suite.ctx, task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusInProgress, stored.Status)
	assert.Equal(suite.T(), "0xAAA", stored.Assignee)
}

func (suite *StoreTestSuite) TestApplyToTask_SecondApplicantOverwrites() {
	task := suite.createTask("X")

	_, err := suite.store.ApplyToTask(suite.ctx, task.ID, "0xAAA")
	suite.Require().NoError(err)
	applied, err := suite.store.ApplyToTask(suite.ctx, task.ID, "0xBBB")
	suite.Require().NoError(err)

	assert.Equal(suite.T(), models.TaskStatusInProgress, applied.Status)
	assert.Equal(suite.T(), "0xBBB", applied.Assignee)
}

func (suite *StoreTestSuite) TestApplyToTask_ReopensCompletedTask() {
	task := suite.createTask("X")
	_, err := suite.store.ApplyToTask(suite.ctx, task.ID, "0xAAA")
	suite.Require().NoError(err)
	_, err = suite.store.ApproveTask(suite.ctx, task.ID)
	suite.Require().NoError(err)

	applied, err := suite.store.ApplyToTask(suite.ctx, task.ID, "0xBBB")
	suite.Require().NoError(err)

	assert.Equal(suite.T(), models.TaskStatusInProgress, applied.Status)
	assert.Equal(suite.T(), "0xBBB", applied.Assignee)
}

func (suite *StoreTestSuite) TestApplyToTask_NotFound() {
	_, err := suite.store.ApplyToTask(suite.ctx, "missing", "0xAAA")
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *StoreTestSuite) TestApproveTask_WithoutAssigneeFailsWithoutMutation() {
	suite.seedUsers(models.User{WalletAddress: "0xAAA", Name: "Alex"})
	task := suite.createTask("X")

	result, err := suite.store.ApproveTask(suite.ctx, task.ID)

	assert.ErrorIs(suite.T(), err, ErrTaskNotAssigned)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
	assert.Nil(suite.T(), result.UpdatedUser)

	stored, err := suite.store.GetTask(suite.ctx, task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusOpen, stored.Status)

	user, err := suite.store.GetUser(suite.ctx, "0xAAA")
	suite.Require().NoError(err)
	assert.Empty(suite.T(), user.Portfolio)
}

func (suite *StoreTestSuite) TestApproveTask_NotFound() {
	_, err := suite.store.ApproveTask(suite.ctx, "missing")
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *StoreTestSuite) TestApproveTask_MintsSkillNFT() {
	suite.seedUsers(models.User{WalletAddress: "0xAAA", Name: "Alex", Skills: []string{"Go"}})

	task := suite.createTask("X")
	assert.Equal(suite.T(), models.TaskStatusOpen, task.Status)

	applied, err := suite.store.ApplyToTask(suite.ctx, task.ID, "0xAAA")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusInProgress, applied.Status)

	result, err := suite.store.ApproveTask(suite.ctx, task.ID)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), models.TaskStatusCompleted, result.Task.Status)
	assert.Equal(suite.T(), "0xAAA", result.Task.Assignee)
	assert.Equal(suite.T(), "X", result.Task.Title)
	assert.Equal(suite.T(), "Acme", result.Task.Company)
	assert.True(suite.T(), result.Task.Reward.Equal(decimal.NewFromInt(100)))

	suite.Require().NotNil(result.UpdatedUser)
	suite.Require().Len(result.UpdatedUser.Portfolio, 1)
	nft := result.UpdatedUser.Portfolio[0]
	assert.NotEmpty(suite.T(), nft.ID)
	assert.Equal(suite.T(), task.ID, nft.TaskID)
	assert.Equal(suite.T(), "X", nft.TaskTitle)
	assert.Equal(suite.T(), "2024-05-01", nft.IssueDate)
	assert.Equal(suite.T(), fmt.Sprintf("https://picsum.photos/seed/%s/500/500", task.ID), nft.ImageURL)

	stored, err := suite.store.GetUser(suite.ctx, "0xAAA")
	suite.Require().NoError(err)
	suite.Require().Len(stored.Portfolio, 1)
	assert.Equal(suite.T(), nft.ID, stored.Portfolio[0].ID)
}

func (suite *StoreTestSuite) TestApproveTask_PrependsToPortfolio() {
	suite.seedUsers(models.User{
		WalletAddress: "0xAAA",
		Name:          "Alex",
		Portfolio: []models.SkillNFT{
			{ID: "nft1", TaskID: "t1", TaskTitle: "Old 1", IssueDate: "2023-10-26"},
			{ID: "nft2", TaskID: "t2", TaskTitle: "Old 2", IssueDate: "2023-09-15"},
		},
	})
	task := suite.createTask("New")
	_, err := suite.store.ApplyToTask(suite.ctx, task.ID, "0xAAA")
	suite.Require().NoError(err)

	result, err := suite.store.ApproveTask(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(result.UpdatedUser)

	portfolio := result.UpdatedUser.Portfolio
	suite.Require().Len(portfolio, 3)
	assert.Equal(suite.T(), task.ID, portfolio[0].TaskID)
	assert.Equal(suite.T(), "nft1", portfolio[1].ID)
	assert.Equal(suite.T(), "nft2", portfolio[2].ID)

	stored, err := suite.store.GetUser(suite.ctx, "0xAAA")
	suite.Require().NoError(err)
	suite.Require().Len(stored.Portfolio, 3)
	assert.Equal(suite.T(), task.ID, stored.Portfolio[0].TaskID)
	assert.Equal(suite.T(), "nft1", stored.Portfolio[1].ID)
	assert.Equal(suite.T(), "nft2", stored.Portfolio[2].ID)
}

func (suite *StoreTestSuite) TestApproveTask_UnknownAssigneeCompletesWithoutUser() {
	task := suite.createTask("X")
	_, err := suite.store.ApplyToTask(suite.ctx, task.ID, "0xAAA")
	suite.Require().NoError(err)

	result, err := suite.store.ApproveTask(suite.ctx, task.ID)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), models.TaskStatusCompleted, result.Task.Status)
	assert.Nil(suite.T(), result.UpdatedUser)

	stored, err := suite.store.GetTask(suite.ctx, task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, stored.Status)
}

func (suite *StoreTestSuite) TestApproveTask_TwiceIssuesOneNFT() {
	suite.seedUsers(models.User{WalletAddress: "0xAAA", Name: "Alex"})
	task := suite.createTask("X")
	_, err := suite.store.ApplyToTask(suite.ctx, task.ID, "0xAAA")
	suite.Require().NoError(err)

	_, err = suite.store.ApproveTask(suite.ctx, task.ID)
	suite.Require().NoError(err)
	result, err := suite.store.ApproveTask(suite.ctx, task.ID)
	suite.Require().NoError(err)

	suite.Require().NotNil(result.UpdatedUser)
	assert.Len(suite.T(), result.UpdatedUser.Portfolio, 1)
}

func (suite *StoreTestSuite) TestApproveTask_CompanyAssigneeGetsNoNFT() {
	suite.seedUsers(models.User{WalletAddress: "0xCOMP", Name: "Innovate Inc.", IsCompany: true})
	task := suite.createTask("X")
	_, err := suite.store.ApplyToTask(suite.ctx, task.ID, "0xCOMP")
	suite.Require().NoError(err)

	result, err := suite.store.ApproveTask(suite.ctx, task.ID)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), models.TaskStatusCompleted, result.Task.Status)
	suite.Require().NotNil(result.UpdatedUser)
	assert.Empty(suite.T(), result.UpdatedUser.Portfolio)
}

func (suite *StoreTestSuite) TestSeed_RejectsDuplicates() {
	suite.Require().NoError(suite.store.Seed(suite.ctx, []models.Task{
		{ID: "t1", Title: "One", Status: models.TaskStatusOpen},
	}, []models.User{{WalletAddress: "0xAAA", Name: "Alex"}}))

	err := suite.store.Seed(suite.ctx, []models.Task{{ID: "t1", Title: "Again", Status: models.TaskStatusOpen}}, nil)
	assert.Error(suite.T(), err)

	err = suite.store.Seed(suite.ctx, nil, []models.User{{WalletAddress: "0xAAA", Name: "Again"}})
	assert.Error(suite.T(), err)

	err = suite.store.Seed(suite.ctx, []models.Task{
		{ID: "t9", Title: "Fine", Status: models.TaskStatusOpen},
		{ID: "", Title: "No id", Status: models.TaskStatusOpen},
	}, nil)
	assert.Error(suite.T(), err)

	// The failed batch inserted nothing
	_, err = suite.store.GetTask(suite.ctx, "t9")
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *StoreTestSuite) TestSeed_RejectsUnknownStatus() {
	err := suite.store.Seed(suite.ctx, []models.Task{{ID: "t1", Title: "One", Status: "Archived"}}, nil)
	assert.Error(suite.T(), err)
}

func (suite *StoreTestSuite) TestSeed_RejectsStartedTaskWithoutAssignee() {
	for _, status := range []models.TaskStatus{models.TaskStatusInProgress, models.TaskStatusCompleted} {
		err := suite.store.Seed(suite.ctx, []models.Task{{ID: "t1", Title: "One", Status: status}}, nil)
		assert.Error(suite.T(), err, status)
	}

	_, err := suite.store.GetTask(suite.ctx, "t1")
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *StoreTestSuite) TestSeed_KeepsPortfolioOrder() {
	sameDay := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	suite.seedUsers(
		models.User{
			WalletAddress: "0xAAA",
			Name:          "Alex",
			Portfolio: []models.SkillNFT{
				{ID: "newer", TaskID: "t1", TaskTitle: "One", IssueDate: "2024-03-02", MintedAt: sameDay},
				{ID: "older", TaskID: "t2", TaskTitle: "Two", IssueDate: "2024-03-02", MintedAt: sameDay},
			},
		},
		models.User{
			WalletAddress: "0xBBB",
			Name:          "Blair",
			Portfolio: []models.SkillNFT{
				{ID: "first", TaskID: "t1", TaskTitle: "One", IssueDate: "2024-01-01", MintedAt: sameDay.AddDate(0, -2, -1)},
				{ID: "second", TaskID: "t2", TaskTitle: "Two", IssueDate: "2024-03-02", MintedAt: sameDay},
			},
		},
	)

	for wallet, want := range map[string][]string{
		"0xAAA": {"newer", "older"},
		"0xBBB": {"first", "second"},
	} {
		user, err := suite.store.GetUser(suite.ctx, wallet)
		suite.Require().NoError(err)

		ids := make([]string, 0, len(user.Portfolio))
		for _, nft := range user.Portfolio {
			ids = append(ids, nft.ID)
		}
		assert.Equal(suite.T(), want, ids, wallet)
	}
}

func (suite *StoreTestSuite) TestApproveTask_IssueDateIsUTC() {
	tokyo := time.FixedZone("JST", 9*60*60)
	store := suite.newStore(suite.T(), WithClock(func() time.Time {
		return time.Date(2024, time.May, 1, 1, 0, 0, 0, tokyo)
	}))
	suite.Require().NoError(store.Seed(suite.ctx, nil, []models.User{{WalletAddress: "0xAAA", Name: "Alex"}}))

	task, err := store.CreateTask(suite.ctx, TaskInput{Title: "X", Company: "Acme", RewardToken: "USDC"})
	suite.Require().NoError(err)
	_, err = store.ApplyToTask(suite.ctx, task.ID, "0xAAA")
	suite.Require().NoError(err)

	result, err := store.ApproveTask(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(result.UpdatedUser)
	suite.Require().Len(result.UpdatedUser.Portfolio, 1)
	assert.Equal(suite.T(), "2024-04-30", result.UpdatedUser.Portfolio[0].IssueDate)
}

func (suite *StoreTestSuite) TestConcurrentApplies() {
	task := suite.createTask("X")

	wallets := make([]string, 16)
	for i := range wallets {
		wallets[i] = fmt.Sprintf("0x%02d", i)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(wallets))
	for _, w := range wallets {
		wg.Add(1)
		go func(wallet string) {
			defer wg.Done()
			if _, err := suite.store.ApplyToTask(suite.ctx, task.ID, wallet); err != nil {
				errs <- err
			}
		}(w)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		suite.Require().NoError(err)
	}

	stored, err := suite.store.GetTask(suite.ctx, task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusInProgress, stored.Status)
	assert.Contains(suite.T(), wallets, stored.Assignee)
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{
		newStore: func(_ *testing.T, opts ...Option) Store {
			return NewMemoryStore(opts...)
		},
	})
}

func TestGormStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{
		newStore: func(t *testing.T, opts ...Option) Store {
			return NewGormStore(openTestDB(t), opts...)
		},
	})
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(&config.Config{GinMode: "test", SQLiteDSN: ":memory:"})
	if err != nil {
		t.Fatalf("connect test database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(db); err != nil {
			t.Logf("close test database: %v", err)
		}
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
