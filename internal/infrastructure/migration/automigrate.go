// Package migration handles database schema migration via gorm AutoMigrate.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"fieldpulse/internal/infrastructure/persistence/models"
	"fieldpulse/internal/shared/logger"
)

// AutoMigrateModels lists every model whose schema this service owns.
// DeviceBindingModel is included so a standalone deployment is usable; when
// the enrollment system owns the table the migrate step is a no-op for it.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.AttendanceDayModel{},
		&models.LocationEventModel{},
		&models.CurrentLocationModel{},
		&models.DeviceBindingModel{},
	}
}

// Run executes gorm AutoMigrate for all owned models.
func Run(db *gorm.DB, log logger.Interface) error {
	modelList := AutoMigrateModels()

	log.Infow("starting database migration", "models_count", len(modelList))

	if err := db.AutoMigrate(modelList...); err != nil {
		log.Errorw("database migration failed", "error", err)
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	log.Infow("database migration completed")
	return nil
}
