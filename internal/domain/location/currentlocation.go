package location

import (
	"errors"
	"time"
)

// CurrentLocation is the latest known position of a device, upserted on every
// ping. One row exists per device.
type CurrentLocation struct {
	id        uint
	userID    *uint
	deviceID  string
	latitude  float64
	longitude float64
	metadata  Metadata
	timestamp time.Time
	updatedAt time.Time
}

// NewCurrentLocation creates the latest-position snapshot for a device.
func NewCurrentLocation(
	userID *uint,
	deviceID string,
	latitude, longitude float64,
	metadata Metadata,
	timestamp time.Time,
) (*CurrentLocation, error) {
	if deviceID == "" {
		return nil, errors.New("device ID is required")
	}
	if timestamp.IsZero() {
		return nil, errors.New("timestamp is required")
	}

	return &CurrentLocation{
		userID:    userID,
		deviceID:  deviceID,
		latitude:  latitude,
		longitude: longitude,
		metadata:  metadata,
		timestamp: timestamp.UTC(),
		updatedAt: time.Now().UTC(),
	}, nil
}

// ReconstructCurrentLocation recreates a snapshot from persisted state.
func ReconstructCurrentLocation(
	id uint,
	userID *uint,
	deviceID string,
	latitude, longitude float64,
	metadata Metadata,
	timestamp time.Time,
	updatedAt time.Time,
) *CurrentLocation {
	return &CurrentLocation{
		id:        id,
		userID:    userID,
		deviceID:  deviceID,
		latitude:  latitude,
		longitude: longitude,
		metadata:  metadata,
		timestamp: timestamp,
		updatedAt: updatedAt,
	}
}

// SetID sets the snapshot ID after persistence.
func (c *CurrentLocation) SetID(id uint) { c.id = id }

// Getters
func (c *CurrentLocation) ID() uint             { return c.id }
func (c *CurrentLocation) UserID() *uint        { return c.userID }
func (c *CurrentLocation) DeviceID() string     { return c.deviceID }
func (c *CurrentLocation) Latitude() float64    { return c.latitude }
func (c *CurrentLocation) Longitude() float64   { return c.longitude }
func (c *CurrentLocation) Metadata() Metadata   { return c.metadata }
func (c *CurrentLocation) Timestamp() time.Time { return c.timestamp }
func (c *CurrentLocation) UpdatedAt() time.Time { return c.updatedAt }
