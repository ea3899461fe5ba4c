package routes

import (
	"github.com/gin-gonic/gin"

	"agencydesk/internal/domain/permission"
	"agencydesk/internal/interfaces/http/handlers"
	"agencydesk/internal/interfaces/http/middleware"
)

type SubmissionRouteConfig struct {
	SubmissionHandler *handlers.SubmissionHandler
	AuthMiddleware    *middleware.AuthMiddleware
	Authorizer        middleware.Authorizer
}

func SetupSubmissionRoutes(api *gin.RouterGroup, config *SubmissionRouteConfig) {
	can := func(action permission.Action) gin.HandlerFunc {
		return middleware.RequirePermission(config.Authorizer, permission.ResourceSubmission, action)
	}

	submissions := api.Group("/submissions")
	submissions.Use(config.AuthMiddleware.RequireAuth())
	{
		submissions.POST("", can(permission.ActionCreate), config.SubmissionHandler.CreateSubmission)
		submissions.GET("", can(permission.ActionRead), config.SubmissionHandler.ListSubmissions)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		submissions.POST("/upload", can(permission.ActionCreate), config.SubmissionHandler.UploadSubmission)
		submissions.GET("/overdue", can(permission.ActionRead), config.SubmissionHandler.ListOverdue)
		submissions.PATCH("/:id/status", can(permission.ActionReview), config.SubmissionHandler.UpdateStatus)
		submissions.POST("/:id/feedback", can(permission.ActionReview), config.SubmissionHandler.AddFeedback)

		submissions.GET("/:id", can(permission.ActionRead), config.SubmissionHandler.GetSubmission)
		submissions.PATCH("/:id", can(permission.ActionUpdate), config.SubmissionHandler.UpdateSubmission)
		// ownership is checked by the handler
		submissions.DELETE("/:id", config.SubmissionHandler.DeleteSubmission)
	}
}
