package usecases

import (
	"context"

	"fieldpulse/internal/application/location/dto"
	"fieldpulse/internal/domain/location"
	"fieldpulse/internal/shared/biztime"
	"fieldpulse/internal/shared/constants"
	"fieldpulse/internal/shared/errors"
	"fieldpulse/internal/shared/logger"
)

type IngestLocationCommand struct {
	DeviceID  string
	Latitude  float64
	Longitude float64
	UserID    *uint
	EventType string
	Metadata  location.Metadata
}

type IngestLocationUseCase struct {
	eventRepo   location.EventRepository
	currentRepo location.CurrentRepository
	bindingRepo location.BindingRepository
	cache       LastLocationCache
	broadcaster Broadcaster
	logger      logger.Interface
}

func NewIngestLocationUseCase(
	eventRepo location.EventRepository,
	currentRepo location.CurrentRepository,
	bindingRepo location.BindingRepository,
	cache LastLocationCache,
	broadcaster Broadcaster,
	logger logger.Interface,
) *IngestLocationUseCase {
	return &IngestLocationUseCase{
		eventRepo:   eventRepo,
		currentRepo: currentRepo,
		bindingRepo: bindingRepo,
		cache:       cache,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Execute records one location ping. The event row is append-only, the
// current-location row is upserted per device, and both carry the
// server-resolved timestamp. The admin broadcast is fire-and-forget.
func (uc *IngestLocationUseCase) Execute(ctx context.Context, cmd IngestLocationCommand) (*dto.IngestLocationResult, error) {
	if cmd.DeviceID == "" {
		return nil, errors.NewValidationError("device ID is required")
	}

	now := biztime.NowUTC()

	userID, identity := uc.resolveUser(ctx, cmd)

	event, err := location.NewLocationEvent(
		userID,
		cmd.DeviceID,
		location.EventType(cmd.EventType),
		cmd.Latitude,
		cmd.Longitude,
		cmd.Metadata,
		now,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.eventRepo.Create(ctx, event); err != nil {
		uc.logger.Errorw("failed to persist location event",
			"device_id", cmd.DeviceID,
			"error", err,
		)
		return nil, errors.NewInternalError("failed to record location event")
	}

	current, err := location.NewCurrentLocation(
		userID,
		cmd.DeviceID,
		cmd.Latitude,
		cmd.Longitude,
		cmd.Metadata,
		now,
	)
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	if err := uc.currentRepo.Upsert(ctx, current); err != nil {
		uc.logger.Errorw("failed to upsert current location",
			"device_id", cmd.DeviceID,
			"error", err,
		)
		return nil, errors.NewInternalError("failed to update current location")
	}

	uc.cacheLast(ctx, event)
	uc.broadcast(event, identity)

	return &dto.IngestLocationResult{
		LocationEvent: dto.NewLocationEventData(event),
		Location:      dto.NewCurrentLocationData(current),
	}, nil
}

// deviceIdentity is the display identity attached to broadcasts. Name is a
// device-derived placeholder when no binding is known.
type deviceIdentity struct {
	name  string
	email string
	role  string
}

// resolveUser attributes the ping to a user: explicit ID, then active device
// binding, then cached last ping, then attributed event history. Resolution
// failures downgrade to an unattributed ping, never to an error.
func (uc *IngestLocationUseCase) resolveUser(ctx context.Context, cmd IngestLocationCommand) (*uint, deviceIdentity) {
	placeholder := deviceIdentity{name: dto.PlaceholderName(cmd.DeviceID)}

	binding, err := uc.bindingRepo.FindActiveByDevice(ctx, cmd.DeviceID)
	if err != nil && !errors.IsNotFoundError(err) {
		uc.logger.Warnw("device binding lookup failed",
			"device_id", cmd.DeviceID,
			"error", err,
		)
	}

	identity := placeholder
	if binding != nil {
		identity = deviceIdentity{
			name:  binding.UserName(),
			email: binding.UserEmail(),
			role:  binding.UserRole(),
		}
	}

	if cmd.UserID != nil && *cmd.UserID != 0 {
		return cmd.UserID, identity
	}

	if binding != nil {
		userID := binding.UserID()
		return &userID, identity
	}

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, cmd.DeviceID)
		if err != nil {
			uc.logger.Warnw("last location cache read failed",
				"device_id", cmd.DeviceID,
				"error", err,
			)
		} else if cached != nil && cached.UserID != nil {
			return cached.UserID, placeholder
		}
	}

	prior, err := uc.eventRepo.FindMostRecentByDevice(ctx, cmd.DeviceID)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Warnw("prior location lookup failed",
				"device_id", cmd.DeviceID,
				"error", err,
			)
		}
		return nil, placeholder
	}

	return prior.UserID(), placeholder
}

// cacheLast refreshes the fast-path cache; failures are logged and ignored.
func (uc *IngestLocationUseCase) cacheLast(ctx context.Context, event *location.LocationEvent) {
	if uc.cache == nil {
		return
	}

	err := uc.cache.Set(ctx, event.DeviceID(), CachedPing{
		UserID:    event.UserID(),
		Latitude:  event.Latitude(),
		Longitude: event.Longitude(),
		Timestamp: event.Timestamp(),
	})
	if err != nil {
		uc.logger.Warnw("last location cache write failed",
			"device_id", event.DeviceID(),
			"error", err,
		)
	}
}

func (uc *IngestLocationUseCase) broadcast(event *location.LocationEvent, identity deviceIdentity) {
	update := &dto.UserLocationUpdate{
		UserID:    event.UserID(),
		UserName:  identity.name,
		UserEmail: identity.email,
		UserRole:  identity.role,
		DeviceID:  event.DeviceID(),
		EventType: string(event.EventType()),
		Latitude:  event.Latitude(),
		Longitude: event.Longitude(),
		Metadata:  event.Metadata(),
		Timestamp: event.Timestamp(),
	}

	uc.broadcaster.EmitToGroup(constants.GroupAdmins, constants.EventUserLocationUpdate, update)
}
