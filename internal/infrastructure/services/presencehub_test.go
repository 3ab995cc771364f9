package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldpulse/internal/shared/logger"
)

type throttledPayload struct {
	Key string `json:"key"`
}

func (p *throttledPayload) ThrottleKey() string { return p.Key }

func receive(t *testing.T, conn *SSEConn) string {
	t.Helper()
	select {
	case data := <-conn.Send:
		return string(data)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for SSE event")
		return ""
	}
}

func newTestHub(config *PresenceHubConfig) *PresenceHub {
	return NewPresenceHub(logger.NewLogger(), config)
}

func TestPresenceHubGroups(t *testing.T) {
	hub := newTestHub(nil)
	defer hub.Shutdown()

	admin := hub.RegisterConn("conn-1", []string{"admins"}, nil)
	require.NotNil(t, admin)
	other := hub.RegisterConn("conn-2", []string{"reports"}, nil)
	require.NotNil(t, other)

	hub.EmitToGroup("admins", "user-location-update", map[string]string{"deviceId": "dev1"})

	data := receive(t, admin)
	assert.Contains(t, data, "event: user-location-update")
	assert.Contains(t, data, "dev1")
	assert.Empty(t, other.Send)
}

func TestPresenceHubUserRooms(t *testing.T) {
	hub := newTestHub(nil)
	defer hub.Shutdown()

	all := hub.RegisterConn("conn-all", []string{"admins"}, nil)
	filtered := hub.RegisterConn("conn-filtered", []string{"admins"}, []uint{7})

	hub.EmitToUser(7, "attendance-update", map[string]any{"userId": 7})
	assert.Contains(t, receive(t, all), "attendance-update")
	assert.Contains(t, receive(t, filtered), "attendance-update")

	hub.EmitToUser(8, "attendance-update", map[string]any{"userId": 8})
	assert.Contains(t, receive(t, all), "attendance-update")
	assert.Empty(t, filtered.Send)
}

func TestPresenceHubThrottlesRepeatedKeys(t *testing.T) {
	hub := newTestHub(&PresenceHubConfig{ThrottleMs: 60000})
	defer hub.Shutdown()

	conn := hub.RegisterConn("conn-1", []string{"admins"}, nil)
	require.NotNil(t, conn)

	hub.EmitToGroup("admins", "user-location-update", &throttledPayload{Key: "location:dev1"})
	hub.EmitToGroup("admins", "user-location-update", &throttledPayload{Key: "location:dev1"})
	hub.EmitToGroup("admins", "user-location-update", &throttledPayload{Key: "location:dev2"})

	assert.Contains(t, receive(t, conn), "dev1")
	assert.Contains(t, receive(t, conn), "dev2")
	assert.Empty(t, conn.Send)
}

func TestPresenceHubDropsWhenChannelFull(t *testing.T) {
	hub := newTestHub(nil)
	defer hub.Shutdown()

	conn := hub.RegisterConn("conn-1", []string{"admins"}, nil)
	require.NotNil(t, conn)

	// 64 buffered sends fit, the rest are dropped without blocking
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.EmitToGroup("admins", "user-location-update", map[string]int{"seq": i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a slow consumer")
	}
	assert.Len(t, conn.Send, 64)
}

func TestPresenceHubConnectionLimit(t *testing.T) {
	hub := newTestHub(&PresenceHubConfig{MaxConns: 1})
	defer hub.Shutdown()

	require.NotNil(t, hub.RegisterConn("conn-1", []string{"admins"}, nil))
	assert.Nil(t, hub.RegisterConn("conn-2", []string{"admins"}, nil))
	assert.Equal(t, 1, hub.GetConnCount())
}

func TestPresenceHubUnregister(t *testing.T) {
	hub := newTestHub(nil)
	defer hub.Shutdown()

	conn := hub.RegisterConn("conn-1", []string{"admins"}, nil)
	require.NotNil(t, conn)

	hub.UnregisterConn("conn-1")
	assert.Equal(t, 0, hub.GetConnCount())

	// sending after close must not panic
	hub.EmitToGroup("admins", "user-location-update", map[string]string{"deviceId": "dev1"})
	assert.False(t, conn.TrySend([]byte("late")))
}

func TestPresenceHubShutdown(t *testing.T) {
	hub := newTestHub(nil)

	conn := hub.RegisterConn("conn-1", []string{"admins"}, nil)
	require.NotNil(t, conn)

	hub.Shutdown()
	hub.Shutdown() // idempotent

	assert.Equal(t, 0, hub.GetConnCount())
	assert.Nil(t, hub.RegisterConn("conn-2", []string{"admins"}, nil))
}
