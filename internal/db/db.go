package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"shareit/internal/config"
	"shareit/internal/model"
)

// Open connects to the store selected by cfg.Driver.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "mysql":
		return NewMySQL(cfg.DSN)
	case "sqlite":
		return NewSQLite(cfg.DSN)
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// models lists tables in dependency order.
var models = []any{
	&model.User{},
	&model.ItemRequest{},
	&model.Item{},
	&model.Booking{},
	&model.Comment{},
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return backfillLowered(db)
}

// backfillLowered fills the lower-cased lookup columns of rows written
// before those columns existed. Hooks keep them current afterwards.
func backfillLowered(db *gorm.DB) error {
	var users []model.User
	err := db.Where("email_lower IS NULL OR email_lower = ''").
		FindInBatches(&users, 200, func(_ *gorm.DB, _ int) error {
			for _, u := range users {
				err := db.Model(&model.User{}).Where("id = ?", u.ID).
					UpdateColumn("email_lower", strings.ToLower(u.Email)).Error
				if err != nil {
					return err
				}
			}
			return nil
		}).Error
	if err != nil {
		return fmt.Errorf("backfill users: %w", err)
	}

	var items []model.Item
	err = db.Where("name_lower IS NULL OR name_lower = ''").
		FindInBatches(&items, 200, func(_ *gorm.DB, _ int) error {
			for _, it := range items {
				err := db.Model(&model.Item{}).Where("id = ?", it.ID).UpdateColumns(map[string]any{
					"name_lower":        strings.ToLower(it.Name),
					"description_lower": strings.ToLower(it.Description),
				}).Error
				if err != nil {
					return err
				}
			}
			return nil
		}).Error
	if err != nil {
		return fmt.Errorf("backfill items: %w", err)
	}
	return nil
}

// Reset drops every table and migrates again.
func Reset(db *gorm.DB) error {
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return Migrate(db)
}
