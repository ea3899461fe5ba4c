package models

import (
	"time"

	"gorm.io/datatypes"
)

// TableSlots holds one row per persisted collection.
const TableSlots = "slots"

// SlotModel stores one named collection as a JSON document.
type SlotModel struct {
	Name      string         `gorm:"primaryKey;size:64"`
	Payload   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (SlotModel) TableName() string {
	return TableSlots
}
