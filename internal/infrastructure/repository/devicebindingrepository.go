package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fieldpulse/internal/domain/location"
	"fieldpulse/internal/infrastructure/persistence/mappers"
	"fieldpulse/internal/infrastructure/persistence/models"
	"fieldpulse/internal/shared/errors"
	"fieldpulse/internal/shared/logger"
)

// DeviceBindingRepositoryImpl implements the location.BindingRepository interface
type DeviceBindingRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.DeviceBindingMapper
	logger logger.Interface
}

// NewDeviceBindingRepository creates a new device binding repository instance
func NewDeviceBindingRepository(db *gorm.DB, logger logger.Interface) location.BindingRepository {
	return &DeviceBindingRepositoryImpl{
		db:     db,
		mapper: mappers.NewDeviceBindingMapper(),
		logger: logger,
	}
}

// FindActiveByDevice returns the active binding for a device
func (r *DeviceBindingRepositoryImpl) FindActiveByDevice(ctx context.Context, deviceID string) (*location.DeviceBinding, error) {
	var model models.DeviceBindingModel
	err := r.db.WithContext(ctx).
		Where("device_id = ? AND active = ?", deviceID, true).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("device binding not found")
		}
		r.logger.Errorw("failed to find device binding", "device_id", deviceID, "error", err)
		return nil, fmt.Errorf("failed to find device binding: %w", err)
	}

	return r.mapper.ToEntity(&model), nil
}
