// Package common provides shared HTTP handler utilities.
package common

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fieldpulse/internal/infrastructure/services"
	"fieldpulse/internal/shared/id"
	"fieldpulse/internal/shared/logger"
)

const (
	// SSEKeepaliveInterval is how often an idle stream gets a comment line so
	// proxies do not reap the connection.
	SSEKeepaliveInterval = 30 * time.Second

	// MaxFilterIDs caps the user filter list on a single stream request.
	MaxFilterIDs = 100
)

// SSEHandlerBase carries the stream plumbing shared by SSE endpoints:
// headers, connection ids, filter parsing, and the blocking write loop.
type SSEHandlerBase struct {
	hub    *services.PresenceHub
	logger logger.Interface
}

func NewSSEHandlerBase(hub *services.PresenceHub, log logger.Interface) *SSEHandlerBase {
	return &SSEHandlerBase{hub: hub, logger: log}
}

// SetupSSEResponse sets the response headers for an event stream. CORS
// headers come from the global middleware.
func (h *SSEHandlerBase) SetupSSEResponse(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	// Nginx buffers proxied responses by default, which stalls the stream
	c.Header("X-Accel-Buffering", "no")
}

// GenerateConnID returns a fresh stream connection id.
func (h *SSEHandlerBase) GenerateConnID() string {
	return id.MustGenerateWithPrefix(id.PrefixConn, id.DefaultLength)
}

// ParseUserFilters reads a comma-separated user id list from the named query
// parameter. An empty parameter means no filter (receive all users). Invalid
// and zero entries are skipped; the list is capped at MaxFilterIDs.
func (h *SSEHandlerBase) ParseUserFilters(c *gin.Context, paramName string) []uint {
	raw := c.Query(paramName)
	if raw == "" {
		return nil
	}

	var filters []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		userID, err := strconv.ParseUint(part, 10, 64)
		if err != nil || userID == 0 {
			continue
		}

		filters = append(filters, uint(userID))
		if len(filters) >= MaxFilterIDs {
			h.logger.Warnw("user filters truncated",
				"param", paramName,
				"max", MaxFilterIDs,
			)
			break
		}
	}
	return filters
}

// SendInitialConnection writes the opening comment that tells the client the
// stream is live. Reports whether the write succeeded.
func (h *SSEHandlerBase) SendInitialConnection(c *gin.Context) bool {
	return h.writeChunk(c, ": connected\n\n")
}

// RunEventLoop pumps hub events to the client until the client disconnects,
// a write fails, or the hub closes the connection. Blocking.
func (h *SSEHandlerBase) RunEventLoop(c *gin.Context, conn *services.SSEConn, connID string) {
	keepalive := time.NewTicker(SSEKeepaliveInterval)
	defer keepalive.Stop()

	ctx := c.Request.Context()

	for {
		select {
		case <-ctx.Done():
			h.hub.UnregisterConn(connID)
			h.logger.Infow("stream closed by client", "conn_id", connID)
			return

		case data, ok := <-conn.Send:
			if !ok {
				return
			}
			if !h.writeChunk(c, string(data)) {
				h.hub.UnregisterConn(connID)
				h.logger.Warnw("stream write failed", "conn_id", connID)
				return
			}

		case <-keepalive.C:
			if !h.writeChunk(c, ": keepalive\n\n") {
				h.hub.UnregisterConn(connID)
				h.logger.Warnw("stream keepalive failed", "conn_id", connID)
				return
			}
		}
	}
}

func (h *SSEHandlerBase) writeChunk(c *gin.Context, chunk string) bool {
	if _, err := c.Writer.WriteString(chunk); err != nil {
		return false
	}
	c.Writer.Flush()
	return true
}
