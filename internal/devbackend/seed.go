package devbackend

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/clearflowhq/adminconsole/internal/models"
)

// Seed loads a small deterministic data set when the database is empty.
// Running it against a populated database is a no-op.
func Seed(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("devbackend: nil connection")
	}

	var count int64
	if errCount := conn.Model(&models.Account{}).Count(&count).Error; errCount != nil {
		return fmt.Errorf("devbackend: count accounts: %w", errCount)
	}
	if count > 0 {
		return nil
	}

	return conn.Transaction(func(tx *gorm.DB) error {
		addresses := []models.Address{
			{Line1: "1 Main St", City: "Phoenix", State: "AZ", Zip: "85001"},
			{Line1: "200 Canal Rd", Line2: "Suite 4", City: "Tempe", State: "AZ", Zip: "85281"},
			{Line1: "77 Well Ave", City: "Mesa", State: "AZ"},
		}
		if err := tx.Create(&addresses).Error; err != nil {
			return fmt.Errorf("devbackend: seed addresses: %w", err)
		}

		roles := []models.Role{
			{Name: "Administrator", Description: "Full console access"},
			{Name: "Technician", Description: "Work order execution"},
			{Name: "Viewer", Description: "Read-only access"},
		}
		if err := tx.Create(&roles).Error; err != nil {
			return fmt.Errorf("devbackend: seed roles: %w", err)
		}

		accounts := []models.Account{
			{Name: "Acme Water Co", Status: "active", AddressID: &addresses[0].ID},
			{Name: "Desert Springs HOA", Status: "active", AddressID: &addresses[1].ID},
		}
		if err := tx.Create(&accounts).Error; err != nil {
			return fmt.Errorf("devbackend: seed accounts: %w", err)
		}
		child := models.Account{Name: "Acme Water Co - East", Status: "active", ParentAccountID: &accounts[0].ID}
		if err := tx.Create(&child).Error; err != nil {
			return fmt.Errorf("devbackend: seed child account: %w", err)
		}

		locations := []models.Location{
			{Name: "Phoenix Plant", AccountID: &accounts[0].ID, AddressID: &addresses[0].ID},
			{Name: "Tempe Clubhouse", AccountID: &accounts[1].ID, AddressID: &addresses[1].ID},
			{Name: "Mesa Well Site", AccountID: &accounts[0].ID, AddressID: &addresses[2].ID},
		}
		if err := tx.Create(&locations).Error; err != nil {
			return fmt.Errorf("devbackend: seed locations: %w", err)
		}

		assets := []models.Asset{
			{Name: "RO Unit 1", SerialNumber: "RO-1001", Model: "CF-9000", LocationID: &locations[0].ID},
			{Name: "Carbon Filter A", SerialNumber: "CF-2001", Model: "CF-400", LocationID: &locations[1].ID},
			{Name: "UV Sterilizer", SerialNumber: "UV-3001", Model: "UV-55", LocationID: &locations[2].ID},
		}
		if err := tx.Create(&assets).Error; err != nil {
			return fmt.Errorf("devbackend: seed assets: %w", err)
		}

		users := []models.ConsoleUser{
			{Name: "Dana Ortiz", Email: "dana@clearflow.example", RoleID: &roles[0].ID, Active: true},
			{Name: "Sam Lee", Email: "sam@clearflow.example", RoleID: &roles[1].ID, Active: true},
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("devbackend: seed users: %w", err)
		}

		workOrders := []models.WorkOrder{
			{Title: "Replace RO membrane", Status: "open", AssetID: &assets[0].ID, AssignedTo: &users[1].ID},
			{Title: "Quarterly filter swap", Status: "open", AssetID: &assets[1].ID, AssignedTo: &users[1].ID},
		}
		if err := tx.Create(&workOrders).Error; err != nil {
			return fmt.Errorf("devbackend: seed work orders: %w", err)
		}

		mclLead := 0.015
		contaminants := []models.Contaminant{
			{Name: "Lead", Category: "Inorganic", MCL: &mclLead},
			{Name: "Chlorine", Category: "Disinfectant"},
			{Name: "Arsenic", Category: "Inorganic"},
		}
		if err := tx.Create(&contaminants).Error; err != nil {
			return fmt.Errorf("devbackend: seed contaminants: %w", err)
		}

		blocks := []models.ContentBlock{
			{Title: "Welcome Banner", Slug: "welcome-banner", Body: "Welcome to the console.", Published: true},
			{Title: "Maintenance Notice", Slug: "maintenance-notice", Body: "Scheduled maintenance Sunday."},
		}
		if err := tx.Create(&blocks).Error; err != nil {
			return fmt.Errorf("devbackend: seed content blocks: %w", err)
		}
		return nil
	})
}
