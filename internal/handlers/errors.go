package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/microin-api/internal/errors"
	"github.com/yukikurage/microin-api/internal/repository"
	"github.com/yukikurage/microin-api/internal/services"
)

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrTaskNotAssigned):
		apierrors.NotFound(c, "Task not found or not assigned")
	case errors.Is(err, repository.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, repository.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, repository.ErrNotFound):
		apierrors.NotFound(c, "")
	case errors.Is(err, services.ErrValidation):
		respondValidationError(c, err)
	default:
		log.Printf("[Handler] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		apierrors.InternalError(c, "")
	}
}

var requiredFields = []struct {
	err   error
	field string
}{
	{services.ErrTitleRequired, "title"},
	{services.ErrCompanyRequired, "company"},
	{services.ErrUserIDRequired, "userId"},
	{services.ErrSkillsRequired, "skills"},
	{services.ErrTaskIDRequired, "id"},
	{services.ErrWalletIDRequired, "walletAddress"},
}

func respondValidationError(c *gin.Context, err error) {
	message := validationMessage(err)
	for _, rf := range requiredFields {
		if errors.Is(err, rf.err) {
			apierrors.MissingField(c, message, rf.field)
			return
		}
	}
	if errors.Is(err, services.ErrNegativeReward) {
		apierrors.BadRequestWithDetails(c, message, gin.H{"field": "reward"})
		return
	}
	apierrors.BadRequest(c, message)
}

// validationMessage strips the shared "validation failed: " prefix
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), services.ErrValidation.Error()+": ")
}
