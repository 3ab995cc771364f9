package handlers

import (
	"github.com/gin-gonic/gin"

	locationUsecases "fieldpulse/internal/application/location/usecases"
	"fieldpulse/internal/domain/location"
	"fieldpulse/internal/interfaces/dto"
	"fieldpulse/internal/shared/errors"
	"fieldpulse/internal/shared/logger"
	"fieldpulse/internal/shared/utils"
)

// LocationHandler handles location ingestion endpoints.
type LocationHandler struct {
	ingestUseCase *locationUsecases.IngestLocationUseCase
	logger        logger.Interface
}

// NewLocationHandler creates a new location handler instance
func NewLocationHandler(
	ingestUseCase *locationUsecases.IngestLocationUseCase,
	logger logger.Interface,
) *LocationHandler {
	return &LocationHandler{
		ingestUseCase: ingestUseCase,
		logger:        logger,
	}
}

// Ingest records one location ping from a device.
// POST /api/location-events
func (h *LocationHandler) Ingest(c *gin.Context) {
	var req dto.IngestLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var metadata location.Metadata
	if req.Metadata != nil {
		metadata = location.Metadata{
			Accuracy:     req.Metadata.Accuracy,
			BatteryLevel: req.Metadata.BatteryLevel,
			NetworkType:  req.Metadata.NetworkType,
			Speed:        req.Metadata.Speed,
		}
	}

	result, err := h.ingestUseCase.Execute(c.Request.Context(), locationUsecases.IngestLocationCommand{
		DeviceID:  req.DeviceID,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		UserID:    req.UserID,
		EventType: req.EventType,
		Metadata:  metadata,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Location event recorded")
}
