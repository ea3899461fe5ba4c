package routes

import (
	"github.com/gin-gonic/gin"

	"agencydesk/internal/domain/permission"
	"agencydesk/internal/interfaces/http/handlers"
	"agencydesk/internal/interfaces/http/middleware"
)

type ResourceRouteConfig struct {
	ResourceHandler *handlers.ResourceHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Authorizer      middleware.Authorizer
}

func SetupResourceRoutes(api *gin.RouterGroup, config *ResourceRouteConfig) {
	can := func(action permission.Action) gin.HandlerFunc {
		return middleware.RequirePermission(config.Authorizer, permission.ResourceResource, action)
	}

	resources := api.Group("/resources")
	resources.Use(config.AuthMiddleware.RequireAuth())
	{
		resources.POST("", can(permission.ActionCreate), config.ResourceHandler.CreateResource)
		resources.GET("", can(permission.ActionRead), config.ResourceHandler.ListResources)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		resources.POST("/upload", can(permission.ActionCreate), config.ResourceHandler.UploadResource)
		resources.GET("/activity", can(permission.ActionRead), config.ResourceHandler.ListActivity)
		resources.POST("/:id/access", can(permission.ActionRead), config.ResourceHandler.AccessResource)

		resources.GET("/:id", can(permission.ActionRead), config.ResourceHandler.GetResource)
		resources.PATCH("/:id", can(permission.ActionUpdate), config.ResourceHandler.UpdateResource)
		resources.DELETE("/:id", can(permission.ActionDelete), config.ResourceHandler.DeleteResource)
	}
}
