package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agencydesk/internal/domain/actor"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/utils"
)

// Authenticator resolves a bearer token to an actor.
type Authenticator interface {
	Authenticate(token string) (actor.Actor, error)
}

type AuthMiddleware struct {
	auth   Authenticator
	logger logger.Interface
}

func NewAuthMiddleware(auth Authenticator, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		auth:   auth,
		logger: logger,
	}
}

// RequireAuth puts the actor into the request context and rejects requests
// without a valid token. Event streams may pass the token as ?access_token=.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("access_token")

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
				c.Abort()
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
				c.Abort()
				return
			}

			token = parts[1]
		}

		a, err := m.auth.Authenticate(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(actor.WithActor(c.Request.Context(), a))
		c.Set("user_id", a.ID)

		c.Next()
	}
}
