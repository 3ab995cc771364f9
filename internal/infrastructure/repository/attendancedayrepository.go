package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fieldpulse/internal/domain/attendance"
	"fieldpulse/internal/infrastructure/persistence/mappers"
	"fieldpulse/internal/infrastructure/persistence/models"
	"fieldpulse/internal/shared/errors"
	"fieldpulse/internal/shared/logger"
)

// AttendanceDayRepositoryImpl implements the attendance.Repository interface
type AttendanceDayRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AttendanceDayMapper
	logger logger.Interface
}

// NewAttendanceDayRepository creates a new attendance day repository instance
func NewAttendanceDayRepository(db *gorm.DB, logger logger.Interface) attendance.Repository {
	return &AttendanceDayRepositoryImpl{
		db:     db,
		mapper: mappers.NewAttendanceDayMapper(),
		logger: logger,
	}
}

// FindByUserAndDate finds the attendance day keyed by user and UTC day start
func (r *AttendanceDayRepositoryImpl) FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*attendance.AttendanceDay, error) {
	var model models.AttendanceDayModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("attendance day not found")
		}
		r.logger.Errorw("failed to find attendance day", "user_id", userID, "date", date, "error", err)
		return nil, fmt.Errorf("failed to find attendance day: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map attendance day model to entity", "id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map attendance day model: %w", err)
	}
	return entity, nil
}

// Create inserts a new attendance day. The unique (user_id, date) index turns
// a concurrent create race into a conflict error the caller can retry on.
func (r *AttendanceDayRepositoryImpl) Create(ctx context.Context, day *attendance.AttendanceDay) error {
	model, err := r.mapper.ToModel(day)
	if err != nil {
		r.logger.Errorw("failed to map attendance day entity to model", "error", err)
		return fmt.Errorf("failed to map attendance day entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("attendance day already exists")
		}
		r.logger.Errorw("failed to create attendance day", "user_id", model.UserID, "error", err)
		return fmt.Errorf("failed to create attendance day: %w", err)
	}

	day.SetID(model.ID)

	r.logger.Infow("attendance day created", "id", model.ID, "user_id", model.UserID, "date", model.Date)
	return nil
}

// UpdateWithVersion persists the day guarded by its optimistic-lock version.
// Zero affected rows means another writer got there first.
func (r *AttendanceDayRepositoryImpl) UpdateWithVersion(ctx context.Context, day *attendance.AttendanceDay) error {
	model, err := r.mapper.ToModel(day)
	if err != nil {
		r.logger.Errorw("failed to map attendance day entity to model", "error", err)
		return fmt.Errorf("failed to map attendance day entity: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&models.AttendanceDayModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"sessions":              model.Sessions,
			"current_session_index": model.CurrentSessionIndex,
			"auto_breaks":           model.AutoBreaks,
			"total_working_minutes": model.TotalWorkingMinutes,
			"total_break_minutes":   model.TotalBreakMinutes,
			"status":                model.Status,
			"first_punch_in":        model.FirstPunchIn,
			"last_punch_out":        model.LastPunchOut,
			"version":               model.Version + 1,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update attendance day", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update attendance day: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewConflictError("attendance day was modified concurrently")
	}

	day.SetVersion(model.Version + 1)
	return nil
}
