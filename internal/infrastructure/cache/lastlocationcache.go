package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fieldpulse/internal/application/location/usecases"
)

const lastLocationPrefix = "location:last:"

// RedisLastLocationCache keeps the last ping per device in Redis so device to
// user resolution and dashboard reads skip the events table on the hot path.
// Entries expire with the retention horizon; anything older would be swept
// from the database anyway.
type RedisLastLocationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLastLocationCache creates a new last location cache instance
func NewRedisLastLocationCache(client *redis.Client, retentionHours int) *RedisLastLocationCache {
	if retentionHours <= 0 {
		retentionHours = 24
	}
	return &RedisLastLocationCache{
		client: client,
		ttl:    time.Duration(retentionHours) * time.Hour,
	}
}

// Set stores the device's latest ping with the retention-aligned TTL
func (c *RedisLastLocationCache) Set(ctx context.Context, deviceID string, ping usecases.CachedPing) error {
	if deviceID == "" {
		return errors.New("device ID cannot be empty")
	}

	data, err := json.Marshal(ping)
	if err != nil {
		return fmt.Errorf("failed to marshal cached ping: %w", err)
	}

	if err := c.client.Set(ctx, lastLocationPrefix+deviceID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store last location: %w", err)
	}
	return nil
}

// Get returns the device's latest cached ping, or (nil, nil) on a miss
func (c *RedisLastLocationCache) Get(ctx context.Context, deviceID string) (*usecases.CachedPing, error) {
	if deviceID == "" {
		return nil, errors.New("device ID cannot be empty")
	}

	data, err := c.client.Get(ctx, lastLocationPrefix+deviceID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read last location: %w", err)
	}

	var ping usecases.CachedPing
	if err := json.Unmarshal(data, &ping); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached ping: %w", err)
	}
	return &ping, nil
}
