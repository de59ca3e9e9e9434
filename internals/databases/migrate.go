package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate creates pgcrypto (for gen_random_uuid) and migrates the given models.
func AutoMigrate(db *gorm.DB, models ...any) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("create extension pgcrypto: %w", err)
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
