package repository

import (
	"context"
	"sync"
	"time"

	"github.com/yukikurage/microin-api/internal/models"
)

// Option configures a Store implementation
type Option func(*storeOptions)

type storeOptions struct {
	clock Clock
}

// WithClock overrides the time source used for creation times and issue dates
func WithClock(clock Clock) Option {
	return func(o *storeOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func buildOptions(opts []Option) storeOptions {
	o := storeOptions{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// MemoryStore keeps tasks and users in process memory. A single mutex guards
// both collections so create, apply and approve are atomic with respect to
// each other.
type MemoryStore struct {
	mu sync.RWMutex

	tasks     map[string]*models.Task
	taskOrder []string // newest first

	users map[string]*models.User

	clock Clock
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := buildOptions(opts)
	return &MemoryStore{
		tasks: make(map[string]*models.Task),
		users: make(map[string]*models.User),
		clock: o.clock,
	}
}

// ListTasks returns copies of every task, most recently created first
func (s *MemoryStore) ListTasks(_ context.Context) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.Task, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		tasks = append(tasks, s.tasks[id].Clone())
	}
	return tasks, nil
}

// GetTask finds a task by ID
func (s *MemoryStore) GetTask(_ context.Context, id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrTaskNotFound
	}
	return task.Clone(), nil
}

// GetUser finds a user by wallet address
func (s *MemoryStore) GetUser(_ context.Context, walletAddress string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[walletAddress]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user.Clone(), nil
}

// CreateTask inserts a new Open task at the front of the collection
func (s *MemoryStore) CreateTask(_ context.Context, input TaskInput) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := newTask(input, s.clock())
	s.tasks[task.ID] = &task
	s.taskOrder = append([]string{task.ID}, s.taskOrder...)

	return task.Clone(), nil
}

// ApplyToTask sets the task In Progress with the applicant as assignee
func (s *MemoryStore) ApplyToTask(_ context.Context, taskID, walletAddress string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return models.Task{}, ErrTaskNotFound
	}

	applyTransition(task, walletAddress)
	return task.Clone(), nil
}

// ApproveTask completes an assigned task and prepends a SkillNFT to the
// assignee's portfolio
func (s *MemoryStore) ApproveTask(_ context.Context, taskID string) (ApproveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return ApproveResult{}, ErrTaskNotFound
	}

	if err := approveTransition(task); err != nil {
		return ApproveResult{}, err
	}

	result := ApproveResult{Task: task.Clone()}

	user, ok := s.users[task.Assignee]
	if !ok {
		return result, nil
	}

	if nft, minted := mintSkillNFT(*task, *user, s.clock()); minted {
		user.Portfolio = append([]models.SkillNFT{nft}, user.Portfolio...)
	}

	updated := user.Clone()
	result.UpdatedUser = &updated
	return result, nil
}

// Seed appends tasks and users after any existing entries, keeping the
// given order. Nothing is inserted when any entry is invalid.
func (s *MemoryStore) Seed(_ context.Context, tasks []models.Task, users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateSeed(tasks, users, func(id string) bool {
		_, exists := s.tasks[id]
		return exists
	}, func(wallet string) bool {
		_, exists := s.users[wallet]
		return exists
	}); err != nil {
		return err
	}

	for _, t := range tasks {
		task := t.Clone()
		s.tasks[task.ID] = &task
		s.taskOrder = append(s.taskOrder, task.ID)
	}
	for _, u := range users {
		user := u.Clone()
		s.users[user.WalletAddress] = &user
	}

	return nil
}
