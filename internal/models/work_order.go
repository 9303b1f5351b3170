package models

import "time"

// WorkOrder represents a maintenance job against an asset.
type WorkOrder struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Title  string `gorm:"type:text;not null"`                // Job summary line.
	Status string `gorm:"type:text;not null;default:'open'"` // Workflow status.

	AssetID *uint64 `gorm:"index"`              // Target asset ID.
	Asset   *Asset  `gorm:"foreignKey:AssetID"` // Target asset.

	AssignedTo *uint64      `gorm:"index"`                 // Assigned technician ID.
	Technician *ConsoleUser `gorm:"foreignKey:AssignedTo"` // Assigned technician.

	DueAt *time.Time `gorm:"index"` // Scheduled completion date.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
