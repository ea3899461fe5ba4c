package migration

import (
	"agencydesk/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.SlotModel{},
	}
}
