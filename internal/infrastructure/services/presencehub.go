// Package services provides infrastructure services.
package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"fieldpulse/internal/shared/biztime"
	"fieldpulse/internal/shared/goroutine"
	"fieldpulse/internal/shared/logger"
)

// StreamEvent is the envelope written to SSE consumers.
type StreamEvent struct {
	Event     string `json:"event"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

// Throttleable payloads are rate limited per key at the hub. Location updates
// implement it so a chatty device cannot flood slow dashboard consumers.
type Throttleable interface {
	ThrottleKey() string
}

// SSEConn represents one SSE connection from an observer frontend.
type SSEConn struct {
	ID          string
	Groups      map[string]bool // group subscriptions, e.g. "admins"
	UserFilters map[uint]bool   // nil means subscribe to all user rooms
	Send        chan []byte
	ConnectedAt time.Time
	closed      atomic.Bool
}

// TrySend attempts to send data to the SSE connection.
// Returns false if the channel is closed or full.
func (c *SSEConn) TrySend(data []byte) (sent bool) {
	if c.closed.Load() {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			sent = false
		}
	}()

	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// Close marks the connection as closed and closes the send channel.
func (c *SSEConn) Close() {
	if c.closed.CompareAndSwap(false, true) {
		close(c.Send)
	}
}

// InGroup checks if this connection subscribed to the given group.
func (c *SSEConn) InGroup(group string) bool {
	return c.Groups[group]
}

// ShouldReceiveUser checks if this connection should receive events scoped to
// the given user's room.
func (c *SSEConn) ShouldReceiveUser(userID uint) bool {
	if c.UserFilters == nil {
		return true // No filter, receive all
	}
	return c.UserFilters[userID]
}

// PresenceHub fans real-time attendance and location events out to SSE
// connections. Producers never block: full consumer channels drop the event.
type PresenceHub struct {
	// SSE connections: map[connID]*SSEConn
	conns   map[string]*SSEConn
	connsMu sync.RWMutex

	// Throttling for Throttleable payloads: map[throttleKey]lastPushTime
	throttle   map[string]time.Time
	throttleMu sync.RWMutex

	// Configuration
	maxConns   int
	throttleMs int64

	// Shutdown signal
	done     chan struct{}
	shutdown atomic.Bool

	logger logger.Interface
}

// PresenceHubConfig holds configuration for PresenceHub.
type PresenceHubConfig struct {
	MaxConns   int   // Max concurrent SSE connections (default: 64)
	ThrottleMs int64 // Throttle interval for throttleable events in ms (default: 2000)
}

// NewPresenceHub creates a new PresenceHub instance.
func NewPresenceHub(log logger.Interface, config *PresenceHubConfig) *PresenceHub {
	maxConns := 64
	throttleMs := int64(2000)

	if config != nil {
		if config.MaxConns > 0 {
			maxConns = config.MaxConns
		}
		if config.ThrottleMs > 0 {
			throttleMs = config.ThrottleMs
		}
	}

	h := &PresenceHub{
		conns:      make(map[string]*SSEConn),
		throttle:   make(map[string]time.Time),
		maxConns:   maxConns,
		throttleMs: throttleMs,
		done:       make(chan struct{}),
		logger:     log,
	}

	goroutine.SafeGo(log, "presence-hub-throttle-cleanup", h.cleanupLoop)

	return h
}

// cleanupLoop periodically cleans up the throttle cache.
func (h *PresenceHub) cleanupLoop() {
	// Cleanup interval: 2x throttle duration, minimum 10 seconds
	interval := time.Duration(h.throttleMs*2) * time.Millisecond
	if interval < 10*time.Second {
		interval = 10 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.CleanupThrottleCache()
		}
	}
}

// Shutdown stops the PresenceHub and releases resources.
// Safe to call multiple times.
func (h *PresenceHub) Shutdown() {
	if !h.shutdown.CompareAndSwap(false, true) {
		return // Already shutdown
	}

	close(h.done)

	// Close all connections
	h.connsMu.Lock()
	for _, conn := range h.conns {
		conn.Close()
	}
	h.conns = make(map[string]*SSEConn)
	h.connsMu.Unlock()
}

// RegisterConn registers a new SSE connection subscribed to the given groups
// and, optionally, to specific user rooms (nil means all user rooms).
// Returns the connection or nil if the hub is full or shut down.
func (h *PresenceHub) RegisterConn(connID string, groups []string, userFilters []uint) *SSEConn {
	if h.shutdown.Load() {
		return nil
	}

	groupMap := make(map[string]bool, len(groups))
	for _, g := range groups {
		groupMap[g] = true
	}

	var userFilterMap map[uint]bool
	if len(userFilters) > 0 {
		userFilterMap = make(map[uint]bool, len(userFilters))
		for _, id := range userFilters {
			userFilterMap[id] = true
		}
	}

	conn := &SSEConn{
		ID:          connID,
		Groups:      groupMap,
		UserFilters: userFilterMap,
		Send:        make(chan []byte, 64),
		ConnectedAt: biztime.NowUTC(),
	}

	h.connsMu.Lock()
	defer h.connsMu.Unlock()

	if len(h.conns) >= h.maxConns {
		h.logger.Warnw("SSE connection limit exceeded",
			"conn_id", connID,
			"limit", h.maxConns,
		)
		return nil
	}

	h.conns[connID] = conn

	h.logger.Infow("SSE connection registered",
		"conn_id", connID,
		"groups", groups,
		"user_filters", userFilters,
	)

	return conn
}

// UnregisterConn removes an SSE connection.
func (h *PresenceHub) UnregisterConn(connID string) {
	h.connsMu.Lock()
	conn, ok := h.conns[connID]
	if ok {
		delete(h.conns, connID)
	}
	h.connsMu.Unlock()

	if ok {
		conn.Close()

		h.logger.Infow("SSE connection unregistered", "conn_id", connID)
	}
}

// EmitToUser sends an event scoped to one user's room.
func (h *PresenceHub) EmitToUser(userID uint, event string, payload any) {
	data, err := h.formatSSEEvent(event, payload)
	if err != nil {
		h.logger.Errorw("failed to format SSE event",
			"event", event,
			"user_id", userID,
			"error", err,
		)
		return
	}

	h.connsMu.RLock()
	defer h.connsMu.RUnlock()

	for _, conn := range h.conns {
		if conn.ShouldReceiveUser(userID) {
			if !conn.TrySend(data) {
				h.logger.Warnw("failed to send SSE event, channel full",
					"conn_id", conn.ID,
					"event", event,
				)
			}
		}
	}
}

// EmitToGroup sends an event to all connections subscribed to the group.
// Throttleable payloads are rate limited per key.
func (h *PresenceHub) EmitToGroup(group string, event string, payload any) {
	if throttleable, ok := payload.(Throttleable); ok {
		if !h.shouldPush(throttleable.ThrottleKey()) {
			return
		}
	}

	data, err := h.formatSSEEvent(event, payload)
	if err != nil {
		h.logger.Errorw("failed to format SSE event",
			"event", event,
			"group", group,
			"error", err,
		)
		return
	}

	h.connsMu.RLock()
	defer h.connsMu.RUnlock()

	for _, conn := range h.conns {
		if conn.InGroup(group) {
			if !conn.TrySend(data) {
				h.logger.Warnw("failed to send SSE event, channel full",
					"conn_id", conn.ID,
					"event", event,
				)
			}
		}
	}
}

// GetConnCount returns the current number of SSE connections.
func (h *PresenceHub) GetConnCount() int {
	h.connsMu.RLock()
	defer h.connsMu.RUnlock()
	return len(h.conns)
}

// shouldPush checks if a throttled event should be pushed.
func (h *PresenceHub) shouldPush(key string) bool {
	now := biztime.NowUTC()
	throttleDuration := time.Duration(h.throttleMs) * time.Millisecond

	h.throttleMu.Lock()
	defer h.throttleMu.Unlock()

	lastPush, exists := h.throttle[key]
	if exists && now.Sub(lastPush) < throttleDuration {
		return false
	}

	h.throttle[key] = now
	return true
}

// formatSSEEvent formats an event as SSE data.
func (h *PresenceHub) formatSSEEvent(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(&StreamEvent{
		Event:     event,
		Timestamp: biztime.NowUTC().Unix(),
		Data:      payload,
	})
	if err != nil {
		return nil, err
	}

	// SSE format: "event: <type>\ndata: <json>\n\n"
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event, data)), nil
}

// CleanupThrottleCache removes old entries from the throttle cache.
// Should be called periodically to prevent memory leaks.
func (h *PresenceHub) CleanupThrottleCache() {
	now := biztime.NowUTC()
	threshold := time.Duration(h.throttleMs*2) * time.Millisecond

	h.throttleMu.Lock()
	for key, lastPush := range h.throttle {
		if now.Sub(lastPush) > threshold {
			delete(h.throttle, key)
		}
	}
	h.throttleMu.Unlock()
}
