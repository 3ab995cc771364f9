package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	attendanceUsecases "fieldpulse/internal/application/attendance/usecases"
	"fieldpulse/internal/interfaces/dto"
	"fieldpulse/internal/shared/errors"
	"fieldpulse/internal/shared/logger"
	"fieldpulse/internal/shared/utils"
)

// AttendanceHandler handles attendance punch endpoints.
type AttendanceHandler struct {
	togglePunchUseCase *attendanceUsecases.TogglePunchUseCase
	getTodayUseCase    *attendanceUsecases.GetTodayAttendanceUseCase
	logger             logger.Interface
}

// NewAttendanceHandler creates a new attendance handler instance
func NewAttendanceHandler(
	togglePunchUseCase *attendanceUsecases.TogglePunchUseCase,
	getTodayUseCase *attendanceUsecases.GetTodayAttendanceUseCase,
	logger logger.Interface,
) *AttendanceHandler {
	return &AttendanceHandler{
		togglePunchUseCase: togglePunchUseCase,
		getTodayUseCase:    getTodayUseCase,
		logger:             logger,
	}
}

// TogglePunch toggles the user's punch state for the current business day.
// POST /api/attendance/toggle-punch
func (h *AttendanceHandler) TogglePunch(c *gin.Context) {
	var req dto.TogglePunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	summary, err := h.togglePunchUseCase.Execute(c.Request.Context(), attendanceUsecases.TogglePunchCommand{
		UserID: req.UserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Punch toggled successfully", summary)
}

// GetToday returns the user's attendance summary for the current business day.
// GET /api/attendance/today/:userId
func (h *AttendanceHandler) GetToday(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "userId", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	summary, err := h.getTodayUseCase.Execute(c.Request.Context(), attendanceUsecases.GetTodayAttendanceCommand{
		UserID: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}
