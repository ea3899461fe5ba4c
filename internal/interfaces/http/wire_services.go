package http

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"agencydesk/internal/application/brand"
	"agencydesk/internal/application/common"
	"agencydesk/internal/application/dashboard"
	"agencydesk/internal/application/notification"
	"agencydesk/internal/application/resource"
	"agencydesk/internal/application/store"
	"agencydesk/internal/application/submission"
	"agencydesk/internal/application/ticket"
	"agencydesk/internal/application/user"
	brandDomain "agencydesk/internal/domain/brand"
	resourceDomain "agencydesk/internal/domain/resource"
	submissionDomain "agencydesk/internal/domain/submission"
	ticketDomain "agencydesk/internal/domain/ticket"
	userDomain "agencydesk/internal/domain/user"
	"agencydesk/internal/infrastructure/blob"
	"agencydesk/internal/infrastructure/config"
	"agencydesk/internal/infrastructure/database"
	"agencydesk/internal/infrastructure/persistence/seeds"
	"agencydesk/internal/infrastructure/pubsub"
	"agencydesk/internal/shared/biztime"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/markdown"
)

// Services holds the application services built on the entity stores.
type Services struct {
	Users         *user.Service
	Brands        *brand.Service
	Tickets       *ticket.Service
	Resources     *resource.Service
	Submissions   *submission.Service
	Dashboard     *dashboard.Service
	Notifications *notification.Center
}

// Core is everything below the HTTP layer: connections, slots, sinks, stores
// and services. The CLI commands that do not serve HTTP use it directly.
type Core struct {
	cfg   *config.Config
	log   logger.Interface
	db    *gorm.DB
	redis *redis.Client
	slots store.Slots
	blobs common.BlobStore
	hub   *pubsub.Hub
	bus   *pubsub.RedisNotificationBus

	loaders  []loader
	services *Services
}

// loader is a store or the notification center: anything read from its slot
// at startup.
type loader interface {
	Load(ctx context.Context) error
}

// NewCore opens the configured backends and wires the services. Stores are
// not read until Load is called.
func NewCore(ctx context.Context, cfg *config.Config, log logger.Interface) (*Core, error) {
	c := &Core{cfg: cfg, log: log}

	if cfg.Storage.Driver == StorageDatabase {
		db, err := OpenDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		c.db = db
	}

	if needsRedis(cfg) {
		client, err := initRedis(ctx, cfg, log)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.redis = client
	}

	slots, err := newSlots(cfg, c.db, c.redis)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.slots = slots

	blobs, err := blob.New(ctx, cfg.Blob, log)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}
	c.blobs = blobs

	if err := c.initServices(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Core) initServices() error {
	log := c.log

	c.hub = pubsub.NewHub(c.cfg.Server.MaxStreams, log)
	sinks, bus := newSinks(c.cfg, c.redis, log)
	c.bus = bus

	center := notification.NewCenter(c.slots,
		notification.WithSinks(append([]notification.Sink{c.hub}, sinks...)...),
		notification.WithLogger(log),
	)

	brandSeed, err := seeds.Brands()
	if err != nil {
		return fmt.Errorf("failed to decode brand fixtures: %w", err)
	}
	userSeed, err := seeds.Users()
	if err != nil {
		return fmt.Errorf("failed to decode user fixtures: %w", err)
	}

	users := store.New(user.Kind(userSeed), c.slots, center, store.WithLogger[userDomain.User](log))
	brands := store.New(brand.Kind(brandSeed), c.slots, center, store.WithLogger[brandDomain.Brand](log))
	tickets := store.New(ticket.Kind(), c.slots, center, store.WithLogger[ticketDomain.Ticket](log))
	comments := store.New(ticket.CommentKind(), c.slots, center, store.WithLogger[ticketDomain.Comment](log))
	resources := store.New(resource.Kind(), c.slots, center, store.WithLogger[resourceDomain.Resource](log))
	activity := store.New(resource.ActivityKind(), c.slots, center, store.WithLogger[resourceDomain.Activity](log))
	submissions := store.New(submission.Kind(), c.slots, center, store.WithLogger[submissionDomain.Submission](log))
	c.loaders = []loader{center, users, brands, tickets, comments, resources, activity, submissions}

	policy := brandDomain.DeletePolicy(c.cfg.Stores.BrandDeletePolicy)
	if !policy.IsValid() {
		return fmt.Errorf("invalid brand delete policy %q", c.cfg.Stores.BrandDeletePolicy)
	}

	userSvc := user.NewService(users, log)
	brandSvc := brand.NewService(brands, policy, log)
	ticketSvc := ticket.NewService(tickets, comments, brandSvc, userSvc, markdown.NewRenderer(), log)
	resourceSvc := resource.NewService(resources, activity, brandSvc, c.blobs, log)
	submissionSvc := submission.NewService(submissions, brandSvc, c.blobs, log)
	brandSvc.AddReferrers(ticketSvc, resourceSvc, submissionSvc)

	c.services = &Services{
		Users:         userSvc,
		Brands:        brandSvc,
		Tickets:       ticketSvc,
		Resources:     resourceSvc,
		Submissions:   submissionSvc,
		Dashboard:     dashboard.NewService(ticketSvc, userSvc, biztime.System),
		Notifications: center,
	}
	return nil
}

// Load reads every store from its slot, seeding empty slots.
func (c *Core) Load(ctx context.Context) error {
	for _, l := range c.loaders {
		if err := l.Load(ctx); err != nil {
			return err
		}
	}
	c.log.Infow("stores loaded",
		"storage", c.cfg.Storage.Driver,
		"users", len(c.services.Users.List()),
		"brands", len(c.services.Brands.List()),
		"tickets", len(c.services.Tickets.List(ticketDomain.Filter{})))
	return nil
}

func (c *Core) Services() *Services { return c.services }

func (c *Core) DB() *gorm.DB { return c.db }

// Close releases the hub, Redis and the database. It is safe on a partially
// built Core.
func (c *Core) Close() {
	if c.hub != nil {
		c.hub.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close redis client", "error", err)
		}
	}
	if c.db != nil {
		if err := database.Close(); err != nil {
			c.log.Errorw("failed to close database", "error", err)
		}
	}
}
