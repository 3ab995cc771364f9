package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	locationUsecases "fieldpulse/internal/application/location/usecases"
	"fieldpulse/internal/infrastructure/scheduler"
	"fieldpulse/internal/interfaces/dto"
	"fieldpulse/internal/shared/errors"
	"fieldpulse/internal/shared/logger"
	"fieldpulse/internal/shared/utils"
)

// AdminLocationHandler handles the retention sweep admin endpoints.
type AdminLocationHandler struct {
	cleanupUseCase *locationUsecases.CleanupLocationsUseCase
	schedulerMgr   *scheduler.SchedulerManager
	logger         logger.Interface
}

// NewAdminLocationHandler creates a new admin location handler instance
func NewAdminLocationHandler(
	cleanupUseCase *locationUsecases.CleanupLocationsUseCase,
	schedulerMgr *scheduler.SchedulerManager,
	logger logger.Interface,
) *AdminLocationHandler {
	return &AdminLocationHandler{
		cleanupUseCase: cleanupUseCase,
		schedulerMgr:   schedulerMgr,
		logger:         logger,
	}
}

// Cleanup runs a retention sweep on demand.
// POST /api/admin/location-cleanup
func (h *AdminLocationHandler) Cleanup(c *gin.Context) {
	result, err := h.cleanupUseCase.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Location cleanup completed", result)
}

// UpdateCleanupConfig changes retention settings and restarts the sweep timer.
// PUT /api/admin/location-cleanup/config
func (h *AdminLocationHandler) UpdateCleanupConfig(c *gin.Context) {
	var req dto.CleanupConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if req.RetentionHours == nil && req.IntervalHours == nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("retentionHours or intervalHours is required"))
		return
	}

	if req.RetentionHours != nil {
		if err := h.cleanupUseCase.SetRetentionHours(*req.RetentionHours); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	intervalHours := h.schedulerMgr.IntervalHours()
	if req.IntervalHours != nil {
		intervalHours = *req.IntervalHours
	}

	// any settings change restarts the timer, firing one immediate sweep
	if err := h.schedulerMgr.RestartLocationRetentionJob(intervalHours); err != nil {
		h.logger.Errorw("failed to restart retention job", "error", err)
		utils.ErrorResponseWithError(c, errors.NewInternalError("failed to restart retention job"))
		return
	}

	h.logger.Infow("location retention reconfigured",
		"retention_hours", h.cleanupUseCase.RetentionHours(),
		"interval_hours", intervalHours,
	)

	utils.SuccessResponse(c, http.StatusOK, "Retention settings updated", gin.H{
		"retentionHours": h.cleanupUseCase.RetentionHours(),
		"intervalHours":  intervalHours,
	})
}
