package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"agencydesk/internal/domain/permission"
	"agencydesk/internal/shared/utils"
)

// Authorizer checks the actor in ctx against the role policies.
type Authorizer interface {
	Authorize(ctx context.Context, resource permission.Resource, action permission.Action, ownerID string) error
}

// RequirePermission rejects the request unless the actor's role grants action
// on resource. Ownership exceptions are checked by the handlers, which know
// the record.
func RequirePermission(authz Authorizer, resource permission.Resource, action permission.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authz.Authorize(c.Request.Context(), resource, action, ""); err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
