package location

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocationEvent(t *testing.T) {
	now := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)

	t.Run("creates unattributed ping", func(t *testing.T) {
		event, err := NewLocationEvent(nil, "device-abc", "", 12.9716, 77.5946, Metadata{}, now)
		require.NoError(t, err)

		assert.Nil(t, event.UserID())
		assert.False(t, event.IsAttributed())
		assert.Equal(t, "device-abc", event.DeviceID())
		assert.Equal(t, EventTypePing, event.EventType())
		assert.Equal(t, now, event.Timestamp())
	})

	t.Run("attributes after creation", func(t *testing.T) {
		event, err := NewLocationEvent(nil, "device-abc", EventTypePing, 1, 1, Metadata{}, now)
		require.NoError(t, err)

		event.AssignUser(77)

		require.NotNil(t, event.UserID())
		assert.Equal(t, uint(77), *event.UserID())
		assert.True(t, event.IsAttributed())
	})

	t.Run("requires device ID", func(t *testing.T) {
		_, err := NewLocationEvent(nil, "", EventTypePing, 1, 1, Metadata{}, now)
		assert.Error(t, err)
	})

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		_, err := NewLocationEvent(nil, "device-abc", EventTypePing, 91, 0, Metadata{}, now)
		assert.Error(t, err)

		_, err = NewLocationEvent(nil, "device-abc", EventTypePing, 0, -181, Metadata{}, now)
		assert.Error(t, err)
	})

	t.Run("rejects zero timestamp", func(t *testing.T) {
		_, err := NewLocationEvent(nil, "device-abc", EventTypePing, 1, 1, Metadata{}, time.Time{})
		assert.Error(t, err)
	})
}

func TestNewCurrentLocation(t *testing.T) {
	now := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)

	t.Run("creates snapshot", func(t *testing.T) {
		userID := uint(5)
		current, err := NewCurrentLocation(&userID, "device-abc", 12.9716, 77.5946, Metadata{}, now)
		require.NoError(t, err)

		assert.Equal(t, "device-abc", current.DeviceID())
		require.NotNil(t, current.UserID())
		assert.Equal(t, uint(5), *current.UserID())
	})

	t.Run("requires device ID", func(t *testing.T) {
		_, err := NewCurrentLocation(nil, "", 1, 1, Metadata{}, now)
		assert.Error(t, err)
	})
}
