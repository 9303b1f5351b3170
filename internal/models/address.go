package models

import "time"

// Address represents a postal address. Addresses have no single display
// column; consumers synthesize a label from the street, city, and state.
type Address struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Line1 string `gorm:"type:text;not null"` // Street line.
	Line2 string `gorm:"type:text"`          // Suite or unit line.
	City  string `gorm:"type:text"`          // City.
	State string `gorm:"type:text"`          // State or province code.
	Zip   string `gorm:"type:text"`          // Postal code.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
