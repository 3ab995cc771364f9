package usecases

import (
	"context"

	"fieldpulse/internal/application/attendance/dto"
	"fieldpulse/internal/domain/attendance"
	"fieldpulse/internal/shared/biztime"
	"fieldpulse/internal/shared/errors"
	"fieldpulse/internal/shared/logger"
)

type GetTodayAttendanceCommand struct {
	UserID uint
}

type GetTodayAttendanceUseCase struct {
	attendanceRepo attendance.Repository
	logger         logger.Interface
}

func NewGetTodayAttendanceUseCase(
	attendanceRepo attendance.Repository,
	logger logger.Interface,
) *GetTodayAttendanceUseCase {
	return &GetTodayAttendanceUseCase{
		attendanceRepo: attendanceRepo,
		logger:         logger,
	}
}

// Execute returns the user's attendance summary for the current business day.
// When no record exists yet, an empty absent day is synthesized without
// writing anything.
func (uc *GetTodayAttendanceUseCase) Execute(ctx context.Context, cmd GetTodayAttendanceCommand) (*dto.AttendanceDaySummary, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	date := biztime.StartOfDayUTC(biztime.NowUTC())

	day, err := uc.attendanceRepo.FindByUserAndDate(ctx, cmd.UserID, date)
	if err != nil {
		if errors.IsNotFoundError(err) {
			day, err = attendance.NewAttendanceDay(cmd.UserID, date)
			if err != nil {
				return nil, errors.NewValidationError(err.Error())
			}
			return dto.NewAttendanceDaySummary(day), nil
		}

		uc.logger.Errorw("failed to load attendance day",
			"user_id", cmd.UserID,
			"error", err,
		)
		return nil, errors.NewInternalError("failed to load attendance record")
	}

	return dto.NewAttendanceDaySummary(day), nil
}
