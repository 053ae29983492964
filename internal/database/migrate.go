package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/flatrock-dev/quotequiz-service/internal/models"
)

// Migrate applies the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Quote{},
		&models.ShownQuote{},
		&models.GameHistory{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
