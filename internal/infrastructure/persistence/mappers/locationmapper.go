package mappers

import (
	"fieldpulse/internal/domain/location"
	"fieldpulse/internal/infrastructure/persistence/models"
)

// LocationEventMapper handles the conversion between domain entities and persistence models
type LocationEventMapper interface {
	ToEntity(model *models.LocationEventModel) *location.LocationEvent
	ToModel(entity *location.LocationEvent) *models.LocationEventModel
}

type LocationEventMapperImpl struct{}

// NewLocationEventMapper creates a new location event mapper
func NewLocationEventMapper() LocationEventMapper {
	return &LocationEventMapperImpl{}
}

func (m *LocationEventMapperImpl) ToEntity(model *models.LocationEventModel) *location.LocationEvent {
	if model == nil {
		return nil
	}

	return location.ReconstructLocationEvent(
		model.ID,
		model.UserID,
		model.DeviceID,
		location.EventType(model.EventType),
		model.Latitude,
		model.Longitude,
		location.Metadata{
			Accuracy:     model.Accuracy,
			BatteryLevel: model.BatteryLevel,
			NetworkType:  model.NetworkType,
			Speed:        model.Speed,
		},
		model.Timestamp,
		model.CreatedAt,
	)
}

func (m *LocationEventMapperImpl) ToModel(entity *location.LocationEvent) *models.LocationEventModel {
	if entity == nil {
		return nil
	}

	metadata := entity.Metadata()
	return &models.LocationEventModel{
		ID:           entity.ID(),
		UserID:       entity.UserID(),
		DeviceID:     entity.DeviceID(),
		EventType:    string(entity.EventType()),
		Latitude:     entity.Latitude(),
		Longitude:    entity.Longitude(),
		Accuracy:     metadata.Accuracy,
		BatteryLevel: metadata.BatteryLevel,
		NetworkType:  metadata.NetworkType,
		Speed:        metadata.Speed,
		Timestamp:    entity.Timestamp(),
		CreatedAt:    entity.CreatedAt(),
	}
}

// CurrentLocationMapper handles the conversion between domain entities and persistence models
type CurrentLocationMapper interface {
	ToEntity(model *models.CurrentLocationModel) *location.CurrentLocation
	ToModel(entity *location.CurrentLocation) *models.CurrentLocationModel
}

type CurrentLocationMapperImpl struct{}

// NewCurrentLocationMapper creates a new current location mapper
func NewCurrentLocationMapper() CurrentLocationMapper {
	return &CurrentLocationMapperImpl{}
}

func (m *CurrentLocationMapperImpl) ToEntity(model *models.CurrentLocationModel) *location.CurrentLocation {
	if model == nil {
		return nil
	}

	return location.ReconstructCurrentLocation(
		model.ID,
		model.UserID,
		model.DeviceID,
		model.Latitude,
		model.Longitude,
		location.Metadata{
			Accuracy:     model.Accuracy,
			BatteryLevel: model.BatteryLevel,
			NetworkType:  model.NetworkType,
			Speed:        model.Speed,
		},
		model.Timestamp,
		model.UpdatedAt,
	)
}

func (m *CurrentLocationMapperImpl) ToModel(entity *location.CurrentLocation) *models.CurrentLocationModel {
	if entity == nil {
		return nil
	}

	metadata := entity.Metadata()
	return &models.CurrentLocationModel{
		ID:           entity.ID(),
		UserID:       entity.UserID(),
		DeviceID:     entity.DeviceID(),
		Latitude:     entity.Latitude(),
		Longitude:    entity.Longitude(),
		Accuracy:     metadata.Accuracy,
		BatteryLevel: metadata.BatteryLevel,
		NetworkType:  metadata.NetworkType,
		Speed:        metadata.Speed,
		Timestamp:    entity.Timestamp(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

// DeviceBindingMapper converts binding rows to domain entities. Bindings are
// read-only here so there is no ToModel direction.
type DeviceBindingMapper interface {
	ToEntity(model *models.DeviceBindingModel) *location.DeviceBinding
}

type DeviceBindingMapperImpl struct{}

// NewDeviceBindingMapper creates a new device binding mapper
func NewDeviceBindingMapper() DeviceBindingMapper {
	return &DeviceBindingMapperImpl{}
}

func (m *DeviceBindingMapperImpl) ToEntity(model *models.DeviceBindingModel) *location.DeviceBinding {
	if model == nil {
		return nil
	}

	return location.ReconstructDeviceBinding(
		model.ID,
		model.DeviceID,
		model.UserID,
		model.UserName,
		model.UserEmail,
		model.UserRole,
		model.Active,
		model.CreatedAt,
	)
}
