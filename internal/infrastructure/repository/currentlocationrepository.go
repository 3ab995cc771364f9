package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fieldpulse/internal/domain/location"
	"fieldpulse/internal/infrastructure/persistence/mappers"
	"fieldpulse/internal/infrastructure/persistence/models"
	"fieldpulse/internal/shared/errors"
	"fieldpulse/internal/shared/logger"
)

// CurrentLocationRepositoryImpl implements the location.CurrentRepository interface
type CurrentLocationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CurrentLocationMapper
	logger logger.Interface
}

// NewCurrentLocationRepository creates a new current location repository instance
func NewCurrentLocationRepository(db *gorm.DB, logger logger.Interface) location.CurrentRepository {
	return &CurrentLocationRepositoryImpl{
		db:     db,
		mapper: mappers.NewCurrentLocationMapper(),
		logger: logger,
	}
}

// Upsert inserts or replaces the latest-position row for the device
func (r *CurrentLocationRepositoryImpl) Upsert(ctx context.Context, current *location.CurrentLocation) error {
	model := r.mapper.ToModel(current)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "device_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "latitude", "longitude",
			"accuracy", "battery_level", "network_type", "speed",
			"timestamp", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert current location", "device_id", model.DeviceID, "error", err)
		return fmt.Errorf("failed to upsert current location: %w", err)
	}

	current.SetID(model.ID)
	return nil
}

// FindByDevice returns the latest-position row for the device
func (r *CurrentLocationRepositoryImpl) FindByDevice(ctx context.Context, deviceID string) (*location.CurrentLocation, error) {
	var model models.CurrentLocationModel
	err := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("current location not found")
		}
		r.logger.Errorw("failed to find current location", "device_id", deviceID, "error", err)
		return nil, fmt.Errorf("failed to find current location: %w", err)
	}

	return r.mapper.ToEntity(&model), nil
}

// DeleteBefore removes snapshots whose timestamp is older than the cutoff
func (r *CurrentLocationRepositoryImpl) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("timestamp < ?", cutoff).
		Delete(&models.CurrentLocationModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete stale current locations", "cutoff", cutoff, "error", result.Error)
		return 0, fmt.Errorf("failed to delete stale current locations: %w", result.Error)
	}

	return result.RowsAffected, nil
}
