package usecases

import (
	"context"
	"sync"
	"time"

	"fieldpulse/internal/application/location/dto"
	"fieldpulse/internal/domain/location"
	"fieldpulse/internal/shared/biztime"
	"fieldpulse/internal/shared/errors"
	"fieldpulse/internal/shared/logger"
)

// DefaultRetentionHours is how long location rows are kept when no override
// is configured.
const DefaultRetentionHours = 24

type CleanupLocationsUseCase struct {
	eventRepo   location.EventRepository
	currentRepo location.CurrentRepository
	logger      logger.Interface

	mu             sync.RWMutex
	retentionHours int
}

func NewCleanupLocationsUseCase(
	eventRepo location.EventRepository,
	currentRepo location.CurrentRepository,
	retentionHours int,
	logger logger.Interface,
) *CleanupLocationsUseCase {
	if retentionHours <= 0 {
		retentionHours = DefaultRetentionHours
	}
	return &CleanupLocationsUseCase{
		eventRepo:      eventRepo,
		currentRepo:    currentRepo,
		retentionHours: retentionHours,
		logger:         logger,
	}
}

// RetentionHours returns the current retention horizon.
func (uc *CleanupLocationsUseCase) RetentionHours() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.retentionHours
}

// SetRetentionHours changes the retention horizon for subsequent sweeps.
func (uc *CleanupLocationsUseCase) SetRetentionHours(hours int) error {
	if hours <= 0 {
		return errors.NewValidationError("retention hours must be positive")
	}
	uc.mu.Lock()
	uc.retentionHours = hours
	uc.mu.Unlock()
	return nil
}

// Execute deletes location events and current-location rows older than the
// retention horizon. Running it again with no new data deletes nothing.
func (uc *CleanupLocationsUseCase) Execute(ctx context.Context) (*dto.CleanupResult, error) {
	cutoff := biztime.NowUTC().Add(-time.Duration(uc.RetentionHours()) * time.Hour)

	deletedEvents, err := uc.eventRepo.DeleteBefore(ctx, cutoff)
	if err != nil {
		uc.logger.Errorw("failed to delete expired location events",
			"cutoff", cutoff,
			"error", err,
		)
		return nil, errors.NewInternalError("failed to delete expired location events")
	}

	deletedLocations, err := uc.currentRepo.DeleteBefore(ctx, cutoff)
	if err != nil {
		uc.logger.Errorw("failed to delete expired current locations",
			"cutoff", cutoff,
			"error", err,
		)
		return nil, errors.NewInternalError("failed to delete expired current locations")
	}

	uc.logger.Infow("location retention sweep completed",
		"cutoff", cutoff,
		"deleted_events", deletedEvents,
		"deleted_locations", deletedLocations,
	)

	return &dto.CleanupResult{
		DeletedEvents:    deletedEvents,
		DeletedLocations: deletedLocations,
	}, nil
}
