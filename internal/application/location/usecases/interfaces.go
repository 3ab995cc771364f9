package usecases

import (
	"context"
	"time"
)

// Broadcaster pushes real-time events to connected stream consumers.
// Implementations never block; delivery is best effort.
type Broadcaster interface {
	EmitToUser(userID uint, event string, payload any)
	EmitToGroup(group string, event string, payload any)
}

// CachedPing is the last known ping for a device kept in the fast-path cache.
type CachedPing struct {
	UserID    *uint     `json:"userId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// LastLocationCache is the optional fast path for device-to-user resolution.
// Get returns (nil, nil) on a cache miss; implementations must never make a
// miss or backend failure fatal to the caller.
type LastLocationCache interface {
	Set(ctx context.Context, deviceID string, ping CachedPing) error
	Get(ctx context.Context, deviceID string) (*CachedPing, error)
}
