package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fieldpulse/internal/domain/location"
	"fieldpulse/internal/infrastructure/persistence/mappers"
	"fieldpulse/internal/infrastructure/persistence/models"
	"fieldpulse/internal/shared/errors"
	"fieldpulse/internal/shared/logger"
)

// LocationEventRepositoryImpl implements the location.EventRepository interface
type LocationEventRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.LocationEventMapper
	logger logger.Interface
}

// NewLocationEventRepository creates a new location event repository instance
func NewLocationEventRepository(db *gorm.DB, logger logger.Interface) location.EventRepository {
	return &LocationEventRepositoryImpl{
		db:     db,
		mapper: mappers.NewLocationEventMapper(),
		logger: logger,
	}
}

// Create appends a location event
func (r *LocationEventRepositoryImpl) Create(ctx context.Context, event *location.LocationEvent) error {
	model := r.mapper.ToModel(event)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create location event", "device_id", model.DeviceID, "error", err)
		return fmt.Errorf("failed to create location event: %w", err)
	}

	event.SetID(model.ID)
	return nil
}

// FindMostRecentByDevice returns the latest attributed event for a device
func (r *LocationEventRepositoryImpl) FindMostRecentByDevice(ctx context.Context, deviceID string) (*location.LocationEvent, error) {
	var model models.LocationEventModel
	err := r.db.WithContext(ctx).
		Where("device_id = ? AND user_id IS NOT NULL", deviceID).
		Order("timestamp DESC").
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("no attributed location events for device")
		}
		r.logger.Errorw("failed to find recent location event", "device_id", deviceID, "error", err)
		return nil, fmt.Errorf("failed to find recent location event: %w", err)
	}

	return r.mapper.ToEntity(&model), nil
}

// DeleteBefore removes events older than the cutoff
func (r *LocationEventRepositoryImpl) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("timestamp < ?", cutoff).
		Delete(&models.LocationEventModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete old location events", "cutoff", cutoff, "error", result.Error)
		return 0, fmt.Errorf("failed to delete old location events: %w", result.Error)
	}

	return result.RowsAffected, nil
}
