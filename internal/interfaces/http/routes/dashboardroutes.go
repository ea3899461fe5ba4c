package routes

import (
	"github.com/gin-gonic/gin"

	"agencydesk/internal/domain/permission"
	"agencydesk/internal/interfaces/http/handlers"
	"agencydesk/internal/interfaces/http/middleware"
)

type DashboardRouteConfig struct {
	DashboardHandler *handlers.DashboardHandler
	AuthMiddleware   *middleware.AuthMiddleware
	Authorizer       middleware.Authorizer
}

func SetupDashboardRoutes(api *gin.RouterGroup, config *DashboardRouteConfig) {
	dashboard := api.Group("/dashboard")
	dashboard.Use(
		config.AuthMiddleware.RequireAuth(),
		middleware.RequirePermission(config.Authorizer, permission.ResourceDashboard, permission.ActionRead),
	)
	{
		dashboard.GET("/overview", config.DashboardHandler.GetOverview)
		dashboard.GET("/charts", config.DashboardHandler.GetCharts)
		dashboard.GET("/team", config.DashboardHandler.GetTeam)
		dashboard.GET("/activity", config.DashboardHandler.GetActivity)
		dashboard.GET("/tickets/:id/sla", config.DashboardHandler.GetTicketSLA)
	}
}
