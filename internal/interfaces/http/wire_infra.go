package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"agencydesk/internal/application/notification"
	"agencydesk/internal/application/store"
	"agencydesk/internal/infrastructure/config"
	"agencydesk/internal/infrastructure/database"
	"agencydesk/internal/infrastructure/email"
	"agencydesk/internal/infrastructure/migration"
	"agencydesk/internal/infrastructure/persistence"
	"agencydesk/internal/infrastructure/pubsub"
	"agencydesk/internal/infrastructure/queue"
	"agencydesk/internal/shared/logger"
)

// Storage drivers accepted by storage.driver.
const (
	StorageFile     = "file"
	StorageDatabase = "database"
	StorageRedis    = "redis"
	StorageMemory   = "memory"
)

// needsRedis reports whether any configured component talks to Redis.
func needsRedis(cfg *config.Config) bool {
	return cfg.Storage.Driver == StorageRedis || cfg.Notify.Redis.Enabled || cfg.Server.LoginRateLimit > 0
}

// initRedis creates and tests the Redis client connection. A failed ping is
// fatal only when Redis holds the data.
func initRedis(ctx context.Context, cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		if cfg.Storage.Driver == StorageRedis || cfg.Notify.Redis.Enabled {
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.GetAddr(), err)
		}
		log.Warnw("redis unavailable, login rate limiting disabled", "addr", cfg.Redis.GetAddr(), "error", err)
		return nil, nil
	}
	log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())
	return client, nil
}

// OpenDatabase connects and brings the schema up to date with the configured
// migration strategy.
func OpenDatabase(cfg *config.Config, log logger.Interface) (*gorm.DB, error) {
	if err := database.Init(&cfg.Database); err != nil {
		return nil, err
	}
	db := database.Get()

	manager := migration.NewManager(cfg.Database.Migrations, log)
	if err := manager.Migrate(db, migration.AutoMigrateModels()...); err != nil {
		if closeErr := database.Close(); closeErr != nil {
			log.Errorw("failed to close database", "error", closeErr)
		}
		return nil, err
	}
	return db, nil
}

// newSlots picks the slot backend named by storage.driver.
func newSlots(cfg *config.Config, db *gorm.DB, client *redis.Client) (store.Slots, error) {
	switch cfg.Storage.Driver {
	case StorageFile, "":
		return persistence.NewFileSlots(cfg.Storage.Dir)
	case StorageDatabase:
		return persistence.NewGormSlots(db), nil
	case StorageRedis:
		return persistence.NewRedisSlots(client, cfg.Redis.Prefix), nil
	case StorageMemory:
		return persistence.NewMemorySlots(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// newSinks returns the external notification sinks enabled in config. The
// Redis bus is returned separately so its subscriber can be started.
func newSinks(cfg *config.Config, client *redis.Client, log logger.Interface) ([]notification.Sink, *pubsub.RedisNotificationBus) {
	var (
		sinks []notification.Sink
		bus   *pubsub.RedisNotificationBus
	)
	if cfg.Notify.Redis.Enabled && client != nil {
		bus = pubsub.NewRedisNotificationBus(client, cfg.Notify.Redis.Channel, log)
		sinks = append(sinks, bus)
	}
	if cfg.Notify.AMQP.Enabled {
		sinks = append(sinks, queue.NewPublisher(cfg.Notify.AMQP.URL, cfg.Notify.AMQP.Queue, log))
	}
	if cfg.Notify.Email.Enabled {
		sinks = append(sinks, email.NewSMTPNotificationSink(email.SMTPConfigFrom(cfg.Notify.Email), log))
	}
	return sinks, bus
}
