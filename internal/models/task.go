package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Rewards travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "Open"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// Valid reports whether s is one of the known lifecycle states.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          string          `gorm:"primarykey;type:varchar(64)" json:"id"`
	Title       string          `gorm:"not null" json:"title"`
	Company     string          `gorm:"not null;index" json:"company"`
	Description string          `gorm:"type:text" json:"description"`
	Skills      []string        `gorm:"serializer:json" json:"skills"`
	Reward      decimal.Decimal `gorm:"type:numeric;not null" json:"reward"`
	RewardToken string          `gorm:"type:varchar(16);not null" json:"rewardToken"`
	Status      TaskStatus      `gorm:"type:varchar(20);not null;default:'Open'" json:"status"`
	Assignee    string          `gorm:"type:varchar(128);index" json:"assignee,omitempty"`
	CreatedAt   time.Time       `json:"-"`
}

// IsAssigned reports whether a wallet has applied to the task.
func (t Task) IsAssigned() bool {
	return t.Assignee != ""
}

// Clone returns a copy that shares no slices with t. Skills is never nil.
func (t Task) Clone() Task {
	c := t
	c.Skills = append(make([]string, 0, len(t.Skills)), t.Skills...)
	return c
}
