package models

import (
	"time"

	"gorm.io/datatypes"
)

// Contaminant represents a reference row in the contaminant catalog.
type Contaminant struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name     string   `gorm:"type:text;not null;uniqueIndex"` // Contaminant name.
	Category string   `gorm:"type:text"`                      // Chemical or biological category.
	MCL      *float64 `gorm:"type:decimal(12,6)"`             // Maximum contaminant level, mg/L.

	Extra datatypes.JSON `gorm:"type:jsonb"` // Unstructured backend attributes.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
