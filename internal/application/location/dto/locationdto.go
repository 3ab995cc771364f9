package dto

import (
	"fmt"
	"time"

	"fieldpulse/internal/domain/location"
)

// LocationEventData is the persisted-event view returned by ingestion.
type LocationEventData struct {
	ID        uint              `json:"id"`
	UserID    *uint             `json:"userId"`
	DeviceID  string            `json:"deviceId"`
	EventType string            `json:"eventType"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Metadata  location.Metadata `json:"metadata"`
	Timestamp time.Time         `json:"timestamp"`
}

// CurrentLocationData is the latest-position view returned by ingestion.
type CurrentLocationData struct {
	ID        uint              `json:"id"`
	UserID    *uint             `json:"userId"`
	DeviceID  string            `json:"deviceId"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Metadata  location.Metadata `json:"metadata"`
	Timestamp time.Time         `json:"timestamp"`
}

// IngestLocationResult bundles the two rows written per ping.
type IngestLocationResult struct {
	LocationEvent *LocationEventData   `json:"locationEvent"`
	Location      *CurrentLocationData `json:"location"`
}

// UserLocationUpdate is the broadcast payload sent to admin observers.
// UserName falls back to a device-derived placeholder when the ping could not
// be attributed to a known identity.
type UserLocationUpdate struct {
	UserID    *uint             `json:"userId"`
	UserName  string            `json:"userName"`
	UserEmail string            `json:"userEmail,omitempty"`
	UserRole  string            `json:"userRole,omitempty"`
	DeviceID  string            `json:"deviceId"`
	EventType string            `json:"eventType"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Metadata  location.Metadata `json:"metadata"`
	Timestamp time.Time         `json:"timestamp"`
}

// ThrottleKey rate-limits broadcasts per device at the hub.
func (u *UserLocationUpdate) ThrottleKey() string {
	return "location:" + u.DeviceID
}

// PlaceholderName synthesizes the display identity for unattributed devices.
func PlaceholderName(deviceID string) string {
	return fmt.Sprintf("Device %s", deviceID)
}

// NewLocationEventData builds the event view from the domain entity.
func NewLocationEventData(event *location.LocationEvent) *LocationEventData {
	return &LocationEventData{
		ID:        event.ID(),
		UserID:    event.UserID(),
		DeviceID:  event.DeviceID(),
		EventType: string(event.EventType()),
		Latitude:  event.Latitude(),
		Longitude: event.Longitude(),
		Metadata:  event.Metadata(),
		Timestamp: event.Timestamp(),
	}
}

// NewCurrentLocationData builds the latest-position view from the domain entity.
func NewCurrentLocationData(current *location.CurrentLocation) *CurrentLocationData {
	return &CurrentLocationData{
		ID:        current.ID(),
		UserID:    current.UserID(),
		DeviceID:  current.DeviceID(),
		Latitude:  current.Latitude(),
		Longitude: current.Longitude(),
		Metadata:  current.Metadata(),
		Timestamp: current.Timestamp(),
	}
}

// CleanupResult reports how many rows a retention sweep removed.
type CleanupResult struct {
	DeletedEvents    int64 `json:"deletedEvents"`
	DeletedLocations int64 `json:"deletedLocations"`
}
