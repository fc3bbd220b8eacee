package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

// Middleware logs one line per request. It expects RequestID to run first.
func (m *AccessLogMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		dur := time.Since(start)
		rid, _ := GetRequestID(c)

		if m != nil && m.logger != nil {
			m.logger.Printf(
				"HTTP access | rid=%s ip=%s method=%s path=%s status=%d latency=%s resp_bytes=%d ua=%q",
				rid, c.ClientIP(), c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), dur, c.Writer.Size(), c.Request.UserAgent(),
			)
		}
	}
}
