package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/microin-api/internal/models"
	"gorm.io/gorm"
)

// GormStore is a GORM implementation of Store. Every mutation runs in its own
// transaction; the database pool is expected to be capped at one connection.
type GormStore struct {
	db    *gorm.DB
	clock Clock
}

// NewGormStore creates a new GormStore
func NewGormStore(db *gorm.DB, opts ...Option) *GormStore {
	o := buildOptions(opts)
	return &GormStore{db: db, clock: o.clock}
}

// ListTasks returns every task, most recently created first
func (s *GormStore) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("rowid DESC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	for i := range tasks {
		tasks[i] = tasks[i].Clone()
	}
	return tasks, nil
}

// GetTask finds a task by ID
func (s *GormStore) GetTask(ctx context.Context, id string) (models.Task, error) {
	task, err := findTask(s.db.WithContext(ctx), id)
	if err != nil {
		return models.Task{}, err
	}
	return task.Clone(), nil
}

// GetUser finds a user by wallet address with the portfolio newest first
func (s *GormStore) GetUser(ctx context.Context, walletAddress string) (models.User, error) {
	user, err := findUser(s.db.WithContext(ctx), walletAddress)
	if err != nil {
		return models.User{}, err
	}
	return user.Clone(), nil
}

// CreateTask inserts a new Open task
func (s *GormStore) CreateTask(ctx context.Context, input TaskInput) (models.Task, error) {
	task := newTask(input, s.clock())
	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return models.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return task.Clone(), nil
}

// ApplyToTask sets the task In Progress with the applicant as assignee
func (s *GormStore) ApplyToTask(ctx context.Context, taskID, walletAddress string) (models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findTask(tx, taskID)
		if err != nil {
			return err
		}

		applyTransition(&found, walletAddress)
		if err := saveTaskState(tx, found); err != nil {
			return err
		}

		task = found
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return task.Clone(), nil
}

// ApproveTask completes an assigned task and issues a SkillNFT to the assignee
func (s *GormStore) ApproveTask(ctx context.Context, taskID string) (ApproveResult, error) {
	var result ApproveResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findTask(tx, taskID)
		if err != nil {
			return err
		}

		if err := approveTransition(&task); err != nil {
			return err
		}
		if err := saveTaskState(tx, task); err != nil {
			return err
		}
		result.Task = task.Clone()

		user, err := findUser(tx, task.Assignee)
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if nft, minted := mintSkillNFT(task, user, s.clock()); minted {
			if err := tx.Create(&nft).Error; err != nil {
				return fmt.Errorf("failed to create skill nft: %w", err)
			}
			user.Portfolio = append([]models.SkillNFT{nft}, user.Portfolio...)
		}

		updated := user.Clone()
		result.UpdatedUser = &updated
		return nil
	})
	if err != nil {
		return ApproveResult{}, err
	}
	return result, nil
}

// Seed inserts tasks and users in one transaction. Seeded tasks are dated
// before every existing task so they list after them, in the given order.
func (s *GormStore) Seed(ctx context.Context, tasks []models.Task, users []models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskExists, userExists, err := existingKeys(tx)
		if err != nil {
			return err
		}
		if err := validateSeed(tasks, users, taskExists, userExists); err != nil {
			return err
		}

		base, err := oldestTaskTime(tx, s.clock())
		if err != nil {
			return err
		}

		for i, t := range tasks {
			task := t.Clone()
			task.CreatedAt = base.Add(-time.Duration(i+1) * time.Millisecond)
			if err := tx.Create(&task).Error; err != nil {
				return fmt.Errorf("failed to seed task %q: %w", task.ID, err)
			}
		}

		now := s.clock()
		for _, u := range users {
			user := u.Clone()
			if err := tx.Omit("Portfolio").Create(&user).Error; err != nil {
				return fmt.Errorf("failed to seed user %q: %w", user.WalletAddress, err)
			}
			// Portfolios read back by minted_at DESC, so the given order must
			// map to strictly decreasing times.
			var prev time.Time
			for i, nft := range user.Portfolio {
				nft.OwnerWallet = user.WalletAddress
				if nft.MintedAt.IsZero() {
					nft.MintedAt = now.Add(-time.Duration(i+1) * time.Millisecond)
				}
				if i > 0 && !nft.MintedAt.Before(prev) {
					nft.MintedAt = prev.Add(-time.Millisecond)
				}
				prev = nft.MintedAt
				if err := tx.Create(&nft).Error; err != nil {
					return fmt.Errorf("failed to seed skill nft %q: %w", nft.ID, err)
				}
			}
		}

		return nil
	})
}

func findTask(db *gorm.DB, id string) (models.Task, error) {
	var task models.Task
	if err := db.Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func findUser(db *gorm.DB, walletAddress string) (models.User, error) {
	var user models.User
	err := db.
		Preload("Portfolio", func(db *gorm.DB) *gorm.DB {
			return db.Order("minted_at DESC").Order("rowid DESC")
		}).
		Where("wallet_address = ?", walletAddress).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func saveTaskState(db *gorm.DB, task models.Task) error {
	err := db.Model(&models.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"status":   task.Status,
			"assignee": task.Assignee,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func existingKeys(db *gorm.DB) (func(string) bool, func(string) bool, error) {
	var taskIDs, wallets []string
	if err := db.Model(&models.Task{}).Pluck("id", &taskIDs).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load task ids: %w", err)
	}
	if err := db.Model(&models.User{}).Pluck("wallet_address", &wallets).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load wallet addresses: %w", err)
	}
	return setOf(taskIDs), setOf(wallets), nil
}

func oldestTaskTime(db *gorm.DB, fallback time.Time) (time.Time, error) {
	var oldest models.Task
	err := db.Order("created_at ASC").Order("rowid ASC").First(&oldest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fallback, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to find oldest task: %w", err)
	}
	if oldest.CreatedAt.Before(fallback) {
		return oldest.CreatedAt, nil
	}
	return fallback, nil
}

func setOf(keys []string) func(string) bool {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return func(k string) bool {
		_, ok := set[k]
		return ok
	}
}
