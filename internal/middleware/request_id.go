package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/microin-api/internal/constants"
)

// RequestID reuses an incoming X-Request-ID or assigns a new one, and echoes
// it on the response
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(constants.HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}

		// Store request ID in context for easy access in handlers
		c.Set(constants.ContextKeyRequestID, rid)
		c.Header(constants.HeaderRequestID, rid)
		c.Next()
	}
}

// GetRequestID retrieves the current request ID from context
func GetRequestID(c *gin.Context) (string, bool) {
	rid, exists := c.Get(constants.ContextKeyRequestID)
	if !exists {
		return "", false
	}

	v, ok := rid.(string)
	return v, ok && v != ""
}
