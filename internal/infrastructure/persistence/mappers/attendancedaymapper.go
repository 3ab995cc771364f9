package mappers

import (
	"encoding/json"
	"fmt"

	"fieldpulse/internal/domain/attendance"
	"fieldpulse/internal/infrastructure/persistence/models"
)

// AttendanceDayMapper handles the conversion between domain entities and persistence models
type AttendanceDayMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.AttendanceDayModel) (*attendance.AttendanceDay, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *attendance.AttendanceDay) (*models.AttendanceDayModel, error)
}

// AttendanceDayMapperImpl is the concrete implementation of AttendanceDayMapper
type AttendanceDayMapperImpl struct{}

// NewAttendanceDayMapper creates a new attendance day mapper
func NewAttendanceDayMapper() AttendanceDayMapper {
	return &AttendanceDayMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *AttendanceDayMapperImpl) ToEntity(model *models.AttendanceDayModel) (*attendance.AttendanceDay, error) {
	if model == nil {
		return nil, nil
	}

	var sessions []attendance.PunchSession
	if len(model.Sessions) > 0 {
		if err := json.Unmarshal(model.Sessions, &sessions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sessions: %w", err)
		}
	}

	var autoBreaks []attendance.Break
	if len(model.AutoBreaks) > 0 {
		if err := json.Unmarshal(model.AutoBreaks, &autoBreaks); err != nil {
			return nil, fmt.Errorf("failed to unmarshal auto breaks: %w", err)
		}
	}

	return attendance.ReconstructAttendanceDay(
		model.ID,
		model.UserID,
		model.Date,
		sessions,
		model.CurrentSessionIndex,
		autoBreaks,
		model.TotalWorkingMinutes,
		model.TotalBreakMinutes,
		attendance.Status(model.Status),
		model.FirstPunchIn,
		model.LastPunchOut,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

// ToModel converts a domain entity to a persistence model
func (m *AttendanceDayMapperImpl) ToModel(entity *attendance.AttendanceDay) (*models.AttendanceDayModel, error) {
	if entity == nil {
		return nil, nil
	}

	sessions, err := json.Marshal(entity.Sessions())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sessions: %w", err)
	}

	autoBreaks, err := json.Marshal(entity.AutoBreaks())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal auto breaks: %w", err)
	}

	return &models.AttendanceDayModel{
		ID:                  entity.ID(),
		UserID:              entity.UserID(),
		Date:                entity.Date(),
		Sessions:            sessions,
		CurrentSessionIndex: entity.CurrentSessionIndex(),
		AutoBreaks:          autoBreaks,
		TotalWorkingMinutes: entity.TotalWorkingMinutes(),
		TotalBreakMinutes:   entity.TotalBreakMinutes(),
		Status:              string(entity.Status()),
		FirstPunchIn:        entity.FirstPunchIn(),
		LastPunchOut:        entity.LastPunchOut(),
		Version:             entity.Version(),
		CreatedAt:           entity.CreatedAt(),
		UpdatedAt:           entity.UpdatedAt(),
	}, nil
}
