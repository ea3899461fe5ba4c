package routes

import (
	"github.com/gin-gonic/gin"

	"agencydesk/internal/domain/permission"
	"agencydesk/internal/interfaces/http/handlers"
	"agencydesk/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler *handlers.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
	Authorizer          middleware.Authorizer
}

func SetupNotificationRoutes(api *gin.RouterGroup, config *NotificationRouteConfig) {
	can := func(action permission.Action) gin.HandlerFunc {
		return middleware.RequirePermission(config.Authorizer, permission.ResourceNotification, action)
	}

	notifications := api.Group("/notifications")
	notifications.Use(config.AuthMiddleware.RequireAuth())
	{
		notifications.GET("", can(permission.ActionRead), config.NotificationHandler.ListNotifications)
		notifications.DELETE("", can(permission.ActionDelete), config.NotificationHandler.ClearAll)

		// Specific named endpoints (must come BEFORE /:id to avoid conflicts)
		notifications.GET("/unread-count", can(permission.ActionRead), config.NotificationHandler.GetUnreadCount)
		notifications.GET("/stream", can(permission.ActionRead), config.NotificationHandler.Stream)
		notifications.PATCH("/read-all", can(permission.ActionUpdate), config.NotificationHandler.MarkAllAsRead)

		notifications.PATCH("/:id/read", can(permission.ActionUpdate), config.NotificationHandler.MarkAsRead)
		notifications.DELETE("/:id", can(permission.ActionDelete), config.NotificationHandler.ClearNotification)
	}
}
