package models

import (
	"time"

	"gorm.io/datatypes"
)

// ContentBlock represents an editable content fragment shown in the console.
type ContentBlock struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Title string `gorm:"type:text;not null"`    // Block title.
	Slug  string `gorm:"type:text;uniqueIndex"` // Stable lookup key.
	Body  string `gorm:"type:text"`             // Rendered content body.

	Published bool           `gorm:"not null;default:false"` // Visibility flag.
	Extra     datatypes.JSON `gorm:"type:jsonb"`             // Unstructured backend attributes.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
