package repository

import (
	"fmt"
	"time"

	"github.com/yukikurage/microin-api/internal/constants"
	"github.com/yukikurage/microin-api/internal/models"
	"github.com/yukikurage/microin-api/internal/utils"
)

// Clock returns the current time. Stores take one so issue dates are testable.
type Clock func() time.Time

func newTask(input TaskInput, now time.Time) models.Task {
	return models.Task{
		ID:          utils.NewID(constants.TaskIDPrefix),
		Title:       input.Title,
		Company:     input.Company,
		Description: input.Description,
		Skills:      append(make([]string, 0, len(input.Skills)), input.Skills...),
		Reward:      input.Reward,
		RewardToken: input.RewardToken,
		Status:      models.TaskStatusOpen,
		CreatedAt:   now,
	}
}

// applyTransition has no guard on the prior status: re-applying overwrites
// the assignee and resets the task to In Progress.
func applyTransition(task *models.Task, walletAddress string) {
	task.Status = models.TaskStatusInProgress
	task.Assignee = walletAddress
}

func approveTransition(task *models.Task) error {
	if !task.IsAssigned() {
		return ErrTaskNotAssigned
	}
	task.Status = models.TaskStatusCompleted
	return nil
}

// mintSkillNFT returns the record to prepend to the owner's portfolio, or
// false when the owner is a company or already holds one for this task.
func mintSkillNFT(task models.Task, owner models.User, now time.Time) (models.SkillNFT, bool) {
	if owner.IsCompany || owner.HasSkillNFTFor(task.ID) {
		return models.SkillNFT{}, false
	}
	return models.SkillNFT{
		ID:          utils.NewID(constants.SkillNFTIDPrefix),
		OwnerWallet: owner.WalletAddress,
		TaskID:      task.ID,
		TaskTitle:   task.Title,
		ImageURL:    fmt.Sprintf(constants.SkillNFTImageURLFormat, task.ID),
		IssueDate:   now.UTC().Format(constants.IssueDateLayout),
		MintedAt:    now,
	}, true
}

// validateSeed rejects fixtures with missing or duplicate keys, including
// keys already present in the store.
func validateSeed(tasks []models.Task, users []models.User, taskExists, userExists func(string) bool) error {
	seenTasks := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			return fmt.Errorf("seed task %q: missing id", t.Title)
		}
		if _, dup := seenTasks[t.ID]; dup || taskExists(t.ID) {
			return fmt.Errorf("seed task %q: duplicate id", t.ID)
		}
		if !t.Status.Valid() {
			return fmt.Errorf("seed task %q: invalid status %q", t.ID, t.Status)
		}
		if t.Status != models.TaskStatusOpen && !t.IsAssigned() {
			return fmt.Errorf("seed task %q: status %q requires an assignee", t.ID, t.Status)
		}
		seenTasks[t.ID] = struct{}{}
	}

	seenUsers := make(map[string]struct{}, len(users))
	for _, u := range users {
		if u.WalletAddress == "" {
			return fmt.Errorf("seed user %q: missing wallet address", u.Name)
		}
		if _, dup := seenUsers[u.WalletAddress]; dup || userExists(u.WalletAddress) {
			return fmt.Errorf("seed user %q: duplicate wallet address", u.WalletAddress)
		}
		seenUsers[u.WalletAddress] = struct{}{}
	}

	return nil
}
