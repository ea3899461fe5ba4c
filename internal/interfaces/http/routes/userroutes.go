package routes

import (
	"github.com/gin-gonic/gin"

	"agencydesk/internal/domain/permission"
	"agencydesk/internal/interfaces/http/handlers"
	"agencydesk/internal/interfaces/http/middleware"
)

type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
	Authorizer     middleware.Authorizer
}

func SetupUserRoutes(api *gin.RouterGroup, config *UserRouteConfig) {
	can := func(action permission.Action) gin.HandlerFunc {
		return middleware.RequirePermission(config.Authorizer, permission.ResourceUser, action)
	}

	users := api.Group("/users")
	users.Use(config.AuthMiddleware.RequireAuth())
	{
		users.POST("", can(permission.ActionCreate), config.UserHandler.CreateUser)
		users.GET("", can(permission.ActionRead), config.UserHandler.ListUsers)

		users.GET("/:id", can(permission.ActionRead), config.UserHandler.GetUser)
		users.PATCH("/:id", can(permission.ActionUpdate), config.UserHandler.UpdateUser)
		users.DELETE("/:id", can(permission.ActionDelete), config.UserHandler.DeleteUser)
	}
}
