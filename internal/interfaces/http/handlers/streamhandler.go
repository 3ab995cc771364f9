package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldpulse/internal/infrastructure/services"
	"fieldpulse/internal/interfaces/http/handlers/common"
	"fieldpulse/internal/shared/constants"
	"fieldpulse/internal/shared/logger"
	"fieldpulse/internal/shared/utils"
)

// StreamHandler serves the admin SSE stream carrying attendance and location
// updates.
type StreamHandler struct {
	*common.SSEHandlerBase
	hub    *services.PresenceHub
	logger logger.Interface
}

// NewStreamHandler creates a new stream handler instance
func NewStreamHandler(hub *services.PresenceHub, log logger.Interface) *StreamHandler {
	return &StreamHandler{
		SSEHandlerBase: common.NewSSEHandlerBase(hub, log),
		hub:            hub,
		logger:         log,
	}
}

// Stream opens an SSE connection subscribed to the admin group and,
// optionally, to specific user rooms via ?users=1,2.
// GET /api/admin/stream
func (h *StreamHandler) Stream(c *gin.Context) {
	connID := h.GenerateConnID()
	userFilters := h.ParseUserFilters(c, "users")

	conn := h.hub.RegisterConn(connID, []string{constants.GroupAdmins}, userFilters)
	if conn == nil {
		utils.ErrorResponse(c, http.StatusTooManyRequests, "too many connections")
		return
	}

	h.SetupSSEResponse(c)

	if !h.SendInitialConnection(c) {
		h.hub.UnregisterConn(connID)
		return
	}

	h.RunEventLoop(c, conn, connID)
}
