package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "agencydesk/docs"
	"agencydesk/internal/interfaces/http/middleware"
	"agencydesk/internal/interfaces/http/routes"
	"agencydesk/internal/shared/utils"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestLogger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.ErrorHandler(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders("/swagger/"))

	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	c.engine.GET("/health", c.health)

	if blob := c.cfg.Blob; (blob.Driver == "local" || blob.Driver == "") && strings.HasPrefix(blob.BaseURL, "/") {
		c.engine.Static(blob.BaseURL, blob.Dir)
	}

	api := c.engine.Group("/api")

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.auth,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.rateLimiter,
	})

	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:  c.hdlrs.ticket,
		AuthMiddleware: c.authMiddleware,
		Authorizer:     c.authorizer,
	})

	routes.SetupBrandRoutes(api, &routes.BrandRouteConfig{
		BrandHandler:   c.hdlrs.brand,
		AuthMiddleware: c.authMiddleware,
		Authorizer:     c.authorizer,
	})

	routes.SetupResourceRoutes(api, &routes.ResourceRouteConfig{
		ResourceHandler: c.hdlrs.resource,
		AuthMiddleware:  c.authMiddleware,
		Authorizer:      c.authorizer,
	})

	routes.SetupSubmissionRoutes(api, &routes.SubmissionRouteConfig{
		SubmissionHandler: c.hdlrs.submission,
		AuthMiddleware:    c.authMiddleware,
		Authorizer:        c.authorizer,
	})

	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:    c.hdlrs.user,
		AuthMiddleware: c.authMiddleware,
		Authorizer:     c.authorizer,
	})

	routes.SetupNotificationRoutes(api, &routes.NotificationRouteConfig{
		NotificationHandler: c.hdlrs.notification,
		AuthMiddleware:      c.authMiddleware,
		Authorizer:          c.authorizer,
	})

	routes.SetupDashboardRoutes(api, &routes.DashboardRouteConfig{
		DashboardHandler: c.hdlrs.dashboard,
		AuthMiddleware:   c.authMiddleware,
		Authorizer:       c.authorizer,
	})
}

// health handles GET /health
func (c *Container) health(ctx *gin.Context) {
	utils.SuccessResponse(ctx, http.StatusOK, "ok", gin.H{
		"storage": c.cfg.Storage.Driver,
		"streams": c.core.hub.Count(),
	})
}
