package models

import "time"

// Location represents a serviced site belonging to an account.
type Location struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name string `gorm:"type:text;not null"` // Site display name.

	AccountID *uint64  `gorm:"index"`                // Owning account ID.
	Account   *Account `gorm:"foreignKey:AccountID"` // Owning account.

	AddressID *uint64  `gorm:"index"`                // Site address ID.
	Address   *Address `gorm:"foreignKey:AddressID"` // Site address.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
