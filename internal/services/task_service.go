package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/microin-api/internal/constants"
	"github.com/yukikurage/microin-api/internal/models"
	"github.com/yukikurage/microin-api/internal/repository"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrTitleRequired    = fmt.Errorf("%w: title is required", ErrValidation)
	ErrCompanyRequired  = fmt.Errorf("%w: company is required", ErrValidation)
	ErrNegativeReward   = fmt.Errorf("%w: reward must not be negative", ErrValidation)
	ErrUserIDRequired   = fmt.Errorf("%w: userId is required", ErrValidation)
	ErrSkillsRequired   = fmt.Errorf("%w: at least one skill is required", ErrValidation)
	ErrTaskIDRequired   = fmt.Errorf("%w: task id is required", ErrValidation)
	ErrWalletIDRequired = fmt.Errorf("%w: wallet address is required", ErrValidation)
)

// TaskService handles task business logic
type TaskService struct {
	store       repository.Store
	recommender Recommender
	logger      *log.Logger
}

// NewTaskService creates a new TaskService. recommender may be nil, in which
// case recommendations are always empty.
func NewTaskService(store repository.Store, recommender Recommender, logger *log.Logger) *TaskService {
	if logger == nil {
		logger = log.Default()
	}
	return &TaskService{
		store:       store,
		recommender: recommender,
		logger:      logger,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Skills      []string
	Reward      decimal.Decimal
	RewardToken string
	Company     string
}

// ApplyInput represents a student applying to a task
type ApplyInput struct {
	TaskID        string
	WalletAddress string
}

// ListTasks returns every task, newest first
func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task
func (s *TaskService) GetTask(ctx context.Context, id string) (models.Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Task{}, ErrTaskIDRequired
	}
	return s.store.GetTask(ctx, id)
}

// GetUser returns a user profile with its SkillNFT portfolio
func (s *TaskService) GetUser(ctx context.Context, walletAddress string) (models.User, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return models.User{}, ErrWalletIDRequired
	}
	return s.store.GetUser(ctx, walletAddress)
}

// CreateTask validates input and stores a new Open task
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.Task{}, ErrTitleRequired
	}
	company := strings.TrimSpace(input.Company)
	if company == "" {
		return models.Task{}, ErrCompanyRequired
	}
	if input.Reward.IsNegative() {
		return models.Task{}, ErrNegativeReward
	}

	token := strings.TrimSpace(input.RewardToken)
	if token == "" {
		token = constants.DefaultRewardToken
	}

	task, err := s.store.CreateTask(ctx, repository.TaskInput{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Skills:      cleanSkills(input.Skills),
		Reward:      input.Reward,
		RewardToken: token,
		Company:     company,
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ApplyToTask assigns the applicant and moves the task In Progress
func (s *TaskService) ApplyToTask(ctx context.Context, input ApplyInput) (models.Task, error) {
	wallet := strings.TrimSpace(input.WalletAddress)
	if wallet == "" {
		return models.Task{}, ErrUserIDRequired
	}
	return s.store.ApplyToTask(ctx, input.TaskID, wallet)
}

// ApproveTask completes the task and issues a SkillNFT to the assignee
func (s *TaskService) ApproveTask(ctx context.Context, taskID string) (repository.ApproveResult, error) {
	result, err := s.store.ApproveTask(ctx, taskID)
	if err != nil {
		return repository.ApproveResult{}, err
	}
	if result.UpdatedUser == nil {
		s.logger.Printf("[TaskService] task %s approved but assignee %s has no profile", result.Task.ID, result.Task.Assignee)
	}
	return result, nil
}

// RecommendTasks returns recommended tasks for skills, minus any whose id is
// already on the board. Recommendation failures yield an empty list.
func (s *TaskService) RecommendTasks(ctx context.Context, skills []string) ([]models.Task, error) {
	skills = cleanSkills(skills)
	if len(skills) == 0 {
		return nil, ErrSkillsRequired
	}
	if s.recommender == nil {
		return []models.Task{}, nil
	}

	recommended := s.recommender.Recommend(ctx, skills)
	if len(recommended) == 0 {
		return []models.Task{}, nil
	}

	existing, err := s.store.ListTasks(ctx)
	if err != nil {
		s.logger.Printf("[TaskService] failed to load tasks for recommendation merge: %v", err)
		return []models.Task{}, nil
	}

	return MergeRecommendations(existing, recommended), nil
}

// MergeRecommendations drops recommended tasks whose id matches an existing task
func MergeRecommendations(existing, recommended []models.Task) []models.Task {
	known := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		known[t.ID] = struct{}{}
	}

	merged := make([]models.Task, 0, len(recommended))
	for _, t := range recommended {
		if _, dup := known[t.ID]; dup {
			continue
		}
		known[t.ID] = struct{}{}
		t.Status = models.TaskStatusOpen
		t.Assignee = ""
		merged = append(merged, t)
	}
	return merged
}

// cleanSkills trims each skill and drops blanks. The result is never nil.
func cleanSkills(skills []string) []string {
	cleaned := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			cleaned = append(cleaned, skill)
		}
	}
	return cleaned
}
