package database

import (
	"fmt"

	"gorm.io/gorm"

	"restaurant-manager/models"
	"restaurant-manager/utils"
)

// SchemaVersion is the version the services require before they run.
const SchemaVersion = 1

type schemaMigration struct {
	Version uint `gorm:"primaryKey"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

// Migrate brings the schema to SchemaVersion. It runs once at startup;
// there is no runtime column patching anywhere else.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("migrate schema_migrations: %w", err)
	}

	var current schemaMigration
	err := db.Order("version DESC").First(&current).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("read schema version: %w", err)
	}

	if current.Version >= SchemaVersion {
		utils.InfoLogger.Printf("Schema already at version %d", current.Version)
		return nil
	}

	if err := db.AutoMigrate(
		&models.Dish{},
		&models.Employee{},
		&models.Expense{},
		&models.Order{},
		&models.OrderItem{},
		&models.Table{},
	); err != nil {
		return fmt.Errorf("migrate entities: %w", err)
	}

	if err := db.Create(&schemaMigration{Version: SchemaVersion}).Error; err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	utils.InfoLogger.Printf("Schema migrated to version %d", SchemaVersion)
	return nil
}
