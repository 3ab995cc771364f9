package location

import (
	"errors"
	"time"
)

// EventType classifies a location ping.
type EventType string

const (
	EventTypePing       EventType = "ping"
	EventTypePunchIn    EventType = "punch_in"
	EventTypePunchOut   EventType = "punch_out"
	EventTypeSOS        EventType = "sos"
	EventTypeGeofence   EventType = "geofence"
	EventTypeBackground EventType = "background"
)

// Metadata carries optional sensor readings attached to a ping. All fields
// are optional; nil means the device did not report the value.
type Metadata struct {
	Accuracy     *float64 `json:"accuracy,omitempty"`
	BatteryLevel *float64 `json:"batteryLevel,omitempty"`
	NetworkType  *string  `json:"networkType,omitempty"`
	Speed        *float64 `json:"speed,omitempty"`
}

// LocationEvent is one append-only location ping from a device. UserID is nil
// when the ping could not be attributed to a user.
type LocationEvent struct {
	id        uint
	userID    *uint
	deviceID  string
	eventType EventType
	latitude  float64
	longitude float64
	metadata  Metadata
	timestamp time.Time
	createdAt time.Time
}

// NewLocationEvent creates a location event. The timestamp is server-assigned
// by the caller; client-reported times are never trusted.
func NewLocationEvent(
	userID *uint,
	deviceID string,
	eventType EventType,
	latitude, longitude float64,
	metadata Metadata,
	timestamp time.Time,
) (*LocationEvent, error) {
	if deviceID == "" {
		return nil, errors.New("device ID is required")
	}
	if latitude < -90 || latitude > 90 {
		return nil, errors.New("latitude must be between -90 and 90")
	}
	if longitude < -180 || longitude > 180 {
		return nil, errors.New("longitude must be between -180 and 180")
	}
	if timestamp.IsZero() {
		return nil, errors.New("timestamp is required")
	}
	if eventType == "" {
		eventType = EventTypePing
	}

	return &LocationEvent{
		userID:    userID,
		deviceID:  deviceID,
		eventType: eventType,
		latitude:  latitude,
		longitude: longitude,
		metadata:  metadata,
		timestamp: timestamp.UTC(),
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructLocationEvent recreates an event from persisted state.
func ReconstructLocationEvent(
	id uint,
	userID *uint,
	deviceID string,
	eventType EventType,
	latitude, longitude float64,
	metadata Metadata,
	timestamp time.Time,
	createdAt time.Time,
) *LocationEvent {
	return &LocationEvent{
		id:        id,
		userID:    userID,
		deviceID:  deviceID,
		eventType: eventType,
		latitude:  latitude,
		longitude: longitude,
		metadata:  metadata,
		timestamp: timestamp,
		createdAt: createdAt,
	}
}

// SetID sets the event ID after persistence.
func (e *LocationEvent) SetID(id uint) { e.id = id }

// AssignUser attributes the event to a resolved user.
func (e *LocationEvent) AssignUser(userID uint) {
	e.userID = &userID
}

// IsAttributed reports whether the event is linked to a user.
func (e *LocationEvent) IsAttributed() bool { return e.userID != nil }

// Getters
func (e *LocationEvent) ID() uint             { return e.id }
func (e *LocationEvent) UserID() *uint        { return e.userID }
func (e *LocationEvent) DeviceID() string     { return e.deviceID }
func (e *LocationEvent) EventType() EventType { return e.eventType }
func (e *LocationEvent) Latitude() float64    { return e.latitude }
func (e *LocationEvent) Longitude() float64   { return e.longitude }
func (e *LocationEvent) Metadata() Metadata   { return e.metadata }
func (e *LocationEvent) Timestamp() time.Time { return e.timestamp }
func (e *LocationEvent) CreatedAt() time.Time { return e.createdAt }
