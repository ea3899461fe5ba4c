package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agencydesk/internal/infrastructure/persistence/models"
	"agencydesk/internal/shared/biztime"
)

// GormSlots keeps slots as rows of the slots table. The schema is created by
// the migration package.
type GormSlots struct {
	db *gorm.DB
}

func NewGormSlots(db *gorm.DB) *GormSlots {
	return &GormSlots{db: db}
}

func (g *GormSlots) Load(ctx context.Context, name string) ([]byte, bool, error) {
	var model models.SlotModel
	err := g.db.WithContext(ctx).Where("name = ?", name).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query slot %s: %w", name, err)
	}
	return []byte(model.Payload), true, nil
}

func (g *GormSlots) Save(ctx context.Context, name string, data []byte) error {
	model := models.SlotModel{
		Name:      name,
		Payload:   datatypes.JSON(data),
		UpdatedAt: biztime.NowUTC(),
	}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", name, err)
	}
	return nil
}
