package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/microin-api/internal/dto"
	apierrors "github.com/yukikurage/microin-api/internal/errors"
	"github.com/yukikurage/microin-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns every task on the board
// @Summary      List tasks
// @Description  Returns every task, most recently created first
// @Tags         Tasks
// @Produce      json
// @Success      200  {array}   dto.TaskDTO
// @Failure      500  {object}  apierrors.APIError
// @Router       /api/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a single task
// @Summary      Get a task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  dto.TaskDTO
// @Failure      404  {object}  apierrors.APIError
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask posts a new Open task
// @Summary      Create a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task  body      dto.CreateTaskRequest  true  "Task to post"
// @Success      201   {object}  dto.TaskDTO
// @Failure      400   {object}  apierrors.APIError
// @Router       /api/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidFormat(c, "")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Skills:      req.Skills,
		Reward:      req.Reward,
		RewardToken: req.RewardToken,
		Company:     req.Company,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(task))
}

// ApplyToTask records a student's application
// @Summary      Apply to a task
// @Description  Sets the task In Progress with the applicant as assignee
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Task ID"
// @Param        body  body      dto.ApplyTaskRequest  true  "Applicant"
// @Success      200   {object}  dto.TaskDTO
// @Failure      400   {object}  apierrors.APIError
// @Failure      404   {object}  apierrors.APIError
// @Router       /api/tasks/{id}/apply [post]
func (h *TaskHandler) ApplyToTask(c *gin.Context) {
	var req dto.ApplyTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidFormat(c, "")
		return
	}

	task, err := h.taskService.ApplyToTask(c.Request.Context(), services.ApplyInput{
		TaskID:        c.Param("id"),
		WalletAddress: req.UserID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// ApproveTask completes a task and issues a SkillNFT to the assignee
// @Summary      Approve a task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  dto.ApproveTaskResponse
// @Failure      404  {object}  apierrors.APIError
// @Router       /api/tasks/{id}/approve [post]
func (h *TaskHandler) ApproveTask(c *gin.Context) {
	result, err := h.taskService.ApproveTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApproveTaskResponse(result))
}
