package http

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	appauth "agencydesk/internal/application/auth"
	apppermission "agencydesk/internal/application/permission"
	"agencydesk/internal/infrastructure/auth"
	"agencydesk/internal/infrastructure/config"
	"agencydesk/internal/infrastructure/permission"
	"agencydesk/internal/interfaces/http/handlers"
	"agencydesk/internal/interfaces/http/handlers/common"
	tickethandlers "agencydesk/internal/interfaces/http/handlers/ticket"
	"agencydesk/internal/interfaces/http/middleware"
	"agencydesk/internal/shared/goroutine"
	"agencydesk/internal/shared/logger"
)

// loginWindow is the rate limiting window for login attempts.
const loginWindow = time.Minute

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	auth         *handlers.AuthHandler
	brand        *handlers.BrandHandler
	ticket       *tickethandlers.TicketHandler
	resource     *handlers.ResourceHandler
	submission   *handlers.SubmissionHandler
	user         *handlers.UserHandler
	notification *handlers.NotificationHandler
	dashboard    *handlers.DashboardHandler
}

// Container owns the core, the HTTP-only components and the gin engine. It
// wires everything together and tears it down in Shutdown and Close.
type Container struct {
	engine *gin.Engine
	cfg    *config.Config
	log    logger.Interface
	core   *Core

	authorizer     *apppermission.Service
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	hdlrs          *allHandlers

	busCancel   context.CancelFunc
	busCancelMu sync.Mutex
}

// NewContainer builds and loads the core, then the HTTP layer on top of it.
func NewContainer(ctx context.Context, cfg *config.Config, log logger.Interface) (*Container, error) {
	core, err := NewCore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if err := core.Load(ctx); err != nil {
		core.Close()
		return nil, err
	}

	c := &Container{
		engine: gin.New(),
		cfg:    cfg,
		log:    log,
		core:   core,
	}
	if err := c.initAccess(); err != nil {
		core.Close()
		return nil, err
	}
	c.initHandlers()
	c.SetupRoutes()
	return c, nil
}

// initAccess builds token issuing, role enforcement and the middlewares
// built on them.
func (c *Container) initAccess() error {
	enforcer, err := permission.NewEnforcer(c.core.DB(), c.log)
	if err != nil {
		return err
	}
	c.authorizer = apppermission.NewService(enforcer, c.log)

	jwt := c.cfg.Auth.JWT
	tokens := auth.NewJWTService(jwt.Secret, jwt.Issuer, jwt.AccessExpMinutes)
	authSvc := appauth.NewService(c.core.Services().Users, tokens, c.log)

	c.authMiddleware = middleware.NewAuthMiddleware(authSvc, c.log)
	c.rateLimiter = middleware.NewRateLimiter(c.core.redis, c.cfg.Redis.Prefix, c.cfg.Server.LoginRateLimit, loginWindow)
	c.hdlrs = &allHandlers{auth: handlers.NewAuthHandler(authSvc, c.log)}
	return nil
}

func (c *Container) initHandlers() {
	svc := c.core.Services()
	log := c.log

	c.hdlrs.brand = handlers.NewBrandHandler(svc.Brands, log)
	c.hdlrs.ticket = tickethandlers.NewTicketHandler(svc.Tickets, c.authorizer, log)
	c.hdlrs.resource = handlers.NewResourceHandler(svc.Resources, log)
	c.hdlrs.submission = handlers.NewSubmissionHandler(svc.Submissions, c.authorizer, log)
	c.hdlrs.user = handlers.NewUserHandler(svc.Users, log)
	c.hdlrs.notification = handlers.NewNotificationHandler(svc.Notifications, common.NewSSEHandlerBase(c.core.hub, log), log)
	c.hdlrs.dashboard = handlers.NewDashboardHandler(svc.Dashboard, log)
}

// Start relays notifications published by other instances to local
// streams. It is a no-op without the Redis sink.
func (c *Container) Start() {
	bus := c.core.bus
	if bus == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.busCancelMu.Lock()
	c.busCancel = cancel
	c.busCancelMu.Unlock()

	goroutine.SafeGo(c.log, "notification-bus-forwarder", func() {
		if err := bus.Forward(ctx, c.core.hub); err != nil && ctx.Err() == nil {
			c.log.Errorw("notification bus forwarder stopped", "error", err)
		}
	})
	c.log.Infow("notification bus forwarder started", "instance_id", bus.InstanceID())
}

func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown stops the forwarder and ends open streams so the HTTP server can
// drain. Connections stay open until Close.
func (c *Container) Shutdown() {
	c.busCancelMu.Lock()
	if c.busCancel != nil {
		c.busCancel()
		c.busCancel = nil
	}
	c.busCancelMu.Unlock()

	c.core.hub.Close()
}

// Close releases Redis and the database.
func (c *Container) Close() {
	c.core.Close()
}
