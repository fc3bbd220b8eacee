package models

import "time"

// SkillNFT is the completion record issued when an assigned task is approved.
// TaskTitle is a snapshot taken at issue time.
type SkillNFT struct {
	ID          string    `gorm:"primarykey;type:varchar(64)" json:"id"`
	OwnerWallet string    `gorm:"type:varchar(128);index;not null" json:"-"`
	TaskID      string    `gorm:"type:varchar(64);not null" json:"taskId"`
	TaskTitle   string    `gorm:"not null" json:"taskTitle"`
	ImageURL    string    `json:"imageUrl"`
	IssueDate   string    `gorm:"type:varchar(10);not null" json:"issueDate"`
	MintedAt    time.Time `gorm:"index" json:"-"`
}
