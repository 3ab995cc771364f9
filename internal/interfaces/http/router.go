package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldpulse/internal/infrastructure/config"
	"fieldpulse/internal/infrastructure/services"
	"fieldpulse/internal/interfaces/http/handlers"
	"fieldpulse/internal/interfaces/http/middleware"
	"fieldpulse/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine               *gin.Engine
	attendanceHandler    *handlers.AttendanceHandler
	locationHandler      *handlers.LocationHandler
	adminLocationHandler *handlers.AdminLocationHandler
	streamHandler        *handlers.StreamHandler
	hub                  *services.PresenceHub
	cfg                  *config.Config
	logger               logger.Interface
}

// NewRouter creates a new router with all handlers wired
func NewRouter(
	attendanceHandler *handlers.AttendanceHandler,
	locationHandler *handlers.LocationHandler,
	adminLocationHandler *handlers.AdminLocationHandler,
	streamHandler *handlers.StreamHandler,
	hub *services.PresenceHub,
	cfg *config.Config,
	log logger.Interface,
) *Router {
	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	return &Router{
		engine:               gin.New(),
		attendanceHandler:    attendanceHandler,
		locationHandler:      locationHandler,
		adminLocationHandler: adminLocationHandler,
		streamHandler:        streamHandler,
		hub:                  hub,
		cfg:                  cfg,
		logger:               log,
	}
}

// SetupRoutes registers middleware and all API routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.ErrorHandler())

	r.engine.GET("/health", r.health)

	api := r.engine.Group("/api")
	{
		attendance := api.Group("/attendance")
		{
			attendance.POST("/toggle-punch", r.attendanceHandler.TogglePunch)
			attendance.GET("/today/:userId", r.attendanceHandler.GetToday)
		}

		api.POST("/location-events", r.locationHandler.Ingest)

		admin := api.Group("/admin")
		{
			admin.GET("/stream", r.streamHandler.Stream)
			admin.POST("/location-cleanup", r.adminLocationHandler.Cleanup)
			admin.PUT("/location-cleanup/config", r.adminLocationHandler.UpdateCleanupConfig)
		}
	}
}

// health reports process liveness and stream fan-out load.
func (r *Router) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"connections": r.hub.GetConnCount(),
	})
}

// GetEngine returns the underlying gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
