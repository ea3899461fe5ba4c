package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"agencydesk/internal/shared/logger"
)

// RequestLogger logs one line per request at a level derived from the status.
func RequestLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", redactQuery(c),
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
			"body_size", c.Writer.Size(),
		}

		if requestID := c.GetHeader("X-Request-ID"); requestID != "" {
			args = append(args, "request_id", requestID)
		}

		if userID, exists := c.Get("user_id"); exists {
			args = append(args, "user_id", userID)
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Errorw("HTTP request completed with server error", args...)
		case status >= 400:
			log.Warnw("HTTP request completed with client error", args...)
		case status >= 300:
			log.Debugw("HTTP request completed with redirect", args...)
		default:
			log.Debugw("HTTP request completed successfully", args...)
		}
	}
}

// redactQuery hides stream tokens passed as ?access_token=.
func redactQuery(c *gin.Context) string {
	q := c.Request.URL.Query()
	if q.Has("access_token") {
		q.Set("access_token", "*")
		return q.Encode()
	}
	return c.Request.URL.RawQuery
}
