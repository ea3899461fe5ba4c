package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agencydesk/internal/infrastructure/database"
	"agencydesk/internal/infrastructure/persistence/models"
	"agencydesk/internal/shared/config"
	"agencydesk/internal/shared/logger"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestNewManager_PicksStrategy(t *testing.T) {
	assert.Equal(t, "gorm_auto_migrate", NewManager(StrategyAuto, logger.Nop()).GetStrategy().GetName())
	assert.Equal(t, "goose", NewManager(StrategyGoose, logger.Nop()).GetStrategy().GetName())
	assert.Equal(t, "goose", NewManager("", logger.Nop()).GetStrategy().GetName())
}

func TestGooseStrategy_UpAndDown(t *testing.T) {
	db := openMemory(t)
	strategy := NewGooseStrategy(logger.Nop()).(*GooseStrategy)

	require.NoError(t, NewManagerWithStrategy(strategy, logger.Nop()).Migrate(db))
	version, err := strategy.GetVersion(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	assert.True(t, db.Migrator().HasTable(models.TableSlots))

	// idempotent
	require.NoError(t, strategy.Migrate(db))
	require.NoError(t, strategy.Status(db))

	require.NoError(t, strategy.MigrateDown(db, 1))
	assert.False(t, db.Migrator().HasTable(models.TableSlots))
}

func TestGormAutoMigrateStrategy(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, NewManager(StrategyAuto, logger.Nop()).Migrate(db))
	assert.True(t, db.Migrator().HasTable(&models.SlotModel{}))
}
