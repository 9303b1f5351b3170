// Package db opens and migrates the dev backend database. SQLite is the
// default for local work; a postgres:// DSN switches to PostgreSQL.
package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/clearflowhq/adminconsole/internal/models"
)

// Open connects to the database for the given DSN.
func Open(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("db: empty dsn")
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}
	return conn, nil
}

// Migrate applies the dev backend schema.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if errAutoMigrate := conn.AutoMigrate(
		&models.Address{},
		&models.Role{},
		&models.Account{},
		&models.Location{},
		&models.Asset{},
		&models.ConsoleUser{},
		&models.WorkOrder{},
		&models.Contaminant{},
		&models.ContentBlock{},
	); errAutoMigrate != nil {
		return fmt.Errorf("db: auto migrate: %w", errAutoMigrate)
	}
	return nil
}
