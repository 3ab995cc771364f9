package location

import (
	"context"
	"time"
)

// EventRepository persists the append-only location event stream.
type EventRepository interface {
	Create(ctx context.Context, event *LocationEvent) error

	// FindMostRecentByDevice returns the latest attributed event for a device.
	// Returns a not-found error when the device has no attributed history.
	FindMostRecentByDevice(ctx context.Context, deviceID string) (*LocationEvent, error)

	// DeleteBefore removes events older than the cutoff and returns the number
	// of rows removed.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// CurrentRepository maintains the per-device latest-position snapshot.
type CurrentRepository interface {
	// Upsert inserts the snapshot or replaces the existing row for the device.
	Upsert(ctx context.Context, current *CurrentLocation) error

	FindByDevice(ctx context.Context, deviceID string) (*CurrentLocation, error)

	// DeleteBefore removes snapshots whose timestamp is older than the cutoff
	// and returns the number of rows removed.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// BindingRepository reads device enrollment records.
type BindingRepository interface {
	// FindActiveByDevice returns the active binding for a device. Returns a
	// not-found error when the device is not enrolled.
	FindActiveByDevice(ctx context.Context, deviceID string) (*DeviceBinding, error)
}
