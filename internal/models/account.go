package models

import (
	"time"

	"gorm.io/datatypes"
)

// Account represents a customer account in the hierarchy.
type Account struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name   string `gorm:"type:text;not null"`                  // Account display name.
	Status string `gorm:"type:text;not null;default:'active'"` // Lifecycle status.

	ParentAccountID *uint64  `gorm:"index"`                      // Parent account in the hierarchy.
	ParentAccount   *Account `gorm:"foreignKey:ParentAccountID"` // Parent account.

	AddressID *uint64  `gorm:"index"`                // Billing address ID.
	Address   *Address `gorm:"foreignKey:AddressID"` // Billing address.

	Extra datatypes.JSON `gorm:"type:jsonb"` // Unstructured backend attributes.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
