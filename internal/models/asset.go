package models

import (
	"time"

	"gorm.io/datatypes"
)

// Asset represents an installed filtration unit.
type Asset struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name         string `gorm:"type:text;not null"`    // Asset display name.
	SerialNumber string `gorm:"type:text;uniqueIndex"` // Manufacturer serial.
	Model        string `gorm:"type:text"`             // Unit model identifier.

	LocationID *uint64   `gorm:"index"`                 // Installed site ID.
	Location   *Location `gorm:"foreignKey:LocationID"` // Installed site.

	InstalledAt *time.Time     // Installation date.
	Extra       datatypes.JSON `gorm:"type:jsonb"` // Unstructured backend attributes.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
