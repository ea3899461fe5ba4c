package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"agencydesk/internal/domain/actor"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/utils"
)

// Recovery turns a handler panic into the internal error envelope. gin drops
// panics from broken client connections before they reach here.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", redactQuery(c),
			"error", recovered,
		}
		if a, ok := actor.FromContext(c.Request.Context()); ok {
			args = append(args, "user_id", a.ID, "role", a.Role)
		}
		log.Errorw("panic recovered", append(args, "stack", string(debug.Stack()))...)

		utils.ErrorResponseWithError(c, errors.NewInternalError("Internal server error occurred"))
		c.Abort()
	})
}

// ErrorHandler renders the last error attached with c.Error when the handler
// did not write a response itself.
func ErrorHandler(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		log.Errorw("handler error occurred",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err)

		if !c.Writer.Written() {
			utils.ErrorResponseWithError(c, err)
		}
	}
}
