package routes

import (
	"github.com/gin-gonic/gin"

	"agencydesk/internal/domain/permission"
	tickethandlers "agencydesk/internal/interfaces/http/handlers/ticket"
	"agencydesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler  *tickethandlers.TicketHandler
	AuthMiddleware *middleware.AuthMiddleware
	Authorizer     middleware.Authorizer
}

func SetupTicketRoutes(api *gin.RouterGroup, config *TicketRouteConfig) {
	can := func(resource permission.Resource, action permission.Action) gin.HandlerFunc {
		return middleware.RequirePermission(config.Authorizer, resource, action)
	}

	tickets := api.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		tickets.POST("",
			can(permission.ResourceTicket, permission.ActionCreate),
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			can(permission.ResourceTicket, permission.ActionRead),
			config.TicketHandler.ListTickets)

		tickets.POST("/:id/assign",
			can(permission.ResourceTicket, permission.ActionAssign),
			config.TicketHandler.AssignTicket)
		tickets.GET("/:id/comments",
			can(permission.ResourceComment, permission.ActionRead),
			config.TicketHandler.ListComments)
		tickets.POST("/:id/comments",
			can(permission.ResourceComment, permission.ActionCreate),
			config.TicketHandler.AddComment)

		tickets.GET("/:id",
			can(permission.ResourceTicket, permission.ActionRead),
			config.TicketHandler.GetTicket)
		// ownership is checked by the handler
		tickets.PATCH("/:id",
			config.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id",
			can(permission.ResourceTicket, permission.ActionDelete),
			config.TicketHandler.DeleteTicket)
	}

	comments := api.Group("/comments")
	comments.Use(config.AuthMiddleware.RequireAuth())
	{
		comments.DELETE("/:id",
			config.TicketHandler.DeleteComment)
	}
}
