package dto

import (
	"github.com/shopspring/decimal"
	"github.com/yukikurage/microin-api/internal/models"
	"github.com/yukikurage/microin-api/internal/repository"
)

// CreateTaskRequest is the body of POST /api/tasks
type CreateTaskRequest struct {
	Title       string          `json:"title" example:"Build a DApp Landing Page"`
	Description string          `json:"description" example:"Design and build a responsive landing page."`
	Skills      []string        `json:"skills" example:"React,TailwindCSS"`
	Reward      decimal.Decimal `json:"reward" swaggertype:"number" example:"150"`
	RewardToken string          `json:"rewardToken" example:"USDC"`
	Company     string          `json:"company" example:"ChainInnovate"`
}

// ApplyTaskRequest is the body of POST /api/tasks/:id/apply
type ApplyTaskRequest struct {
	UserID string `json:"userId" example:"0x1234...AbCd"`
}

// RecommendationRequest is the body of POST /api/recommendations
type RecommendationRequest struct {
	Skills []string `json:"skills" binding:"required" example:"React,Solidity"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Company     string            `json:"company"`
	Description string            `json:"description"`
	Skills      []string          `json:"skills"`
	Reward      decimal.Decimal   `json:"reward" swaggertype:"number"`
	RewardToken string            `json:"rewardToken"`
	Status      models.TaskStatus `json:"status" enums:"Open,In Progress,Completed"`
	Assignee    string            `json:"assignee,omitempty"`
}

// ApproveTaskResponse is returned by POST /api/tasks/:id/approve. UpdatedUser
// is omitted when the assignee has no profile.
type ApproveTaskResponse struct {
	Task        TaskDTO  `json:"task"`
	UpdatedUser *UserDTO `json:"updatedUser,omitempty"`
}

// Conversion functions

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	skills := task.Skills
	if skills == nil {
		skills = []string{}
	}
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Company:     task.Company,
		Description: task.Description,
		Skills:      skills,
		Reward:      task.Reward,
		RewardToken: task.RewardToken,
		Status:      task.Status,
		Assignee:    task.Assignee,
	}
}

// ToTaskDTOs converts a slice of tasks, never returning nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// ToApproveTaskResponse converts the outcome of an approval
func ToApproveTaskResponse(result repository.ApproveResult) ApproveTaskResponse {
	resp := ApproveTaskResponse{Task: ToTaskDTO(result.Task)}
	if result.UpdatedUser != nil {
		user := ToUserDTO(*result.UpdatedUser)
		resp.UpdatedUser = &user
	}
	return resp
}
