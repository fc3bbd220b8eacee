package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/microin-api/internal/dto"
	apierrors "github.com/yukikurage/microin-api/internal/errors"
	"github.com/yukikurage/microin-api/internal/services"
)

type RecommendationHandler struct {
	taskService *services.TaskService
}

func NewRecommendationHandler(taskService *services.TaskService) *RecommendationHandler {
	return &RecommendationHandler{
		taskService: taskService,
	}
}

// Recommend returns AI-suggested tasks for a skill set. Upstream failures
// produce an empty list rather than an error.
// @Summary      Recommend tasks
// @Tags         Recommendations
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RecommendationRequest  true  "Student skills"
// @Success      200   {array}   dto.TaskDTO
// @Failure      400   {object}  apierrors.APIError
// @Router       /api/recommendations [post]
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req dto.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidFormat(c, "Skills must be an array of strings")
		return
	}

	tasks, err := h.taskService.RecommendTasks(c.Request.Context(), req.Skills)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}
