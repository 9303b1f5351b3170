package models

import "time"

// ConsoleUser represents a console operator or field technician.
type ConsoleUser struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name  string `gorm:"type:text"`                      // Display name.
	Email string `gorm:"type:text;not null;uniqueIndex"` // Email address, shown as the user label.

	RoleID *uint64 `gorm:"index"`             // Assigned role ID.
	Role   *Role   `gorm:"foreignKey:RoleID"` // Assigned role.

	Active bool `gorm:"not null;default:true"` // Whether the user can sign in.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName keeps the backend's plural table naming.
func (ConsoleUser) TableName() string {
	return "users"
}
