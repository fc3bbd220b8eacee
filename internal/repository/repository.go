package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/microin-api/internal/models"
)

var (
	// ErrNotFound is the root of every lookup failure returned by a Store.
	ErrNotFound = errors.New("not found")

	ErrTaskNotFound    = fmt.Errorf("task %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrTaskNotAssigned = fmt.Errorf("task has no assignee: %w", ErrNotFound)
)

// Store owns the task and user collections. It is the only component that
// assigns ids or changes task status.
type Store interface {
	// ListTasks returns every task, most recently created first
	ListTasks(ctx context.Context) ([]models.Task, error)

	// GetTask finds a task by ID
	GetTask(ctx context.Context, id string) (models.Task, error)

	// GetUser finds a user by wallet address
	GetUser(ctx context.Context, walletAddress string) (models.User, error)

	// CreateTask inserts a new Open task at the front of the collection
	CreateTask(ctx context.Context, input TaskInput) (models.Task, error)

	// ApplyToTask moves a task to In Progress and records the applicant,
	// whatever the task's current status
	ApplyToTask(ctx context.Context, taskID, walletAddress string) (models.Task, error)

	// ApproveTask completes an assigned task and issues a SkillNFT to the assignee
	ApproveTask(ctx context.Context, taskID string) (ApproveResult, error)

	// Seed bulk-loads tasks and users, keeping the given order
	Seed(ctx context.Context, tasks []models.Task, users []models.User) error
}

// TaskInput holds the company-supplied fields of a new task
type TaskInput struct {
	Title       string
	Description string
	Skills      []string
	Reward      decimal.Decimal
	RewardToken string
	Company     string
}

// ApproveResult is the outcome of ApproveTask. UpdatedUser is nil when the
// assignee wallet has no user record; the task is still completed.
type ApproveResult struct {
	Task        models.Task
	UpdatedUser *models.User
}
