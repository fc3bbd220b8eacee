package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/microin-api/internal/dto"
	"github.com/yukikurage/microin-api/internal/services"
)

type UserHandler struct {
	taskService *services.TaskService
}

func NewUserHandler(taskService *services.TaskService) *UserHandler {
	return &UserHandler{
		taskService: taskService,
	}
}

// GetUser returns a profile and its SkillNFT portfolio
// @Summary      Get a user
// @Tags         Users
// @Produce      json
// @Param        walletAddress  path      string  true  "Wallet address"
// @Success      200            {object}  dto.UserDTO
// @Failure      404            {object}  apierrors.APIError
// @Router       /api/users/{walletAddress} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.taskService.GetUser(c.Request.Context(), c.Param("walletAddress"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}
