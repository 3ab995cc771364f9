package usecases

import (
	"context"
	"time"

	"fieldpulse/internal/application/attendance/dto"
	"fieldpulse/internal/domain/attendance"
	"fieldpulse/internal/shared/biztime"
	"fieldpulse/internal/shared/constants"
	"fieldpulse/internal/shared/errors"
	"fieldpulse/internal/shared/logger"
)

// maxToggleAttempts bounds the optimistic-lock retry loop. Two punches racing
// on the same day resolve within one retry; three attempts covers a second
// collision before giving up.
const maxToggleAttempts = 3

type TogglePunchCommand struct {
	UserID uint
}

type TogglePunchUseCase struct {
	attendanceRepo attendance.Repository
	broadcaster    Broadcaster
	logger         logger.Interface
}

func NewTogglePunchUseCase(
	attendanceRepo attendance.Repository,
	broadcaster Broadcaster,
	logger logger.Interface,
) *TogglePunchUseCase {
	return &TogglePunchUseCase{
		attendanceRepo: attendanceRepo,
		broadcaster:    broadcaster,
		logger:         logger,
	}
}

// Execute toggles the user's punch state for the current business day. The
// load-mutate-store cycle retries on version conflicts so two concurrent
// toggles serialize instead of silently losing a punch.
func (uc *TogglePunchUseCase) Execute(ctx context.Context, cmd TogglePunchCommand) (*dto.AttendanceDaySummary, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	now := biztime.NowUTC()
	date := biztime.StartOfDayUTC(now)

	for attempt := 1; attempt <= maxToggleAttempts; attempt++ {
		day, direction, err := uc.toggleOnce(ctx, cmd.UserID, date, now)
		if err != nil {
			if errors.IsConflictError(err) {
				uc.logger.Warnw("punch toggle hit concurrent update, retrying",
					"user_id", cmd.UserID,
					"attempt", attempt,
				)
				continue
			}
			return nil, err
		}

		summary := dto.NewAttendanceDaySummary(day)

		uc.logger.Infow("punch toggled",
			"user_id", cmd.UserID,
			"direction", direction,
			"status", day.Status(),
			"total_working_minutes", day.TotalWorkingMinutes(),
		)

		uc.broadcaster.EmitToUser(cmd.UserID, constants.EventAttendanceUpdate, summary)

		return summary, nil
	}

	uc.logger.Errorw("punch toggle exhausted retries",
		"user_id", cmd.UserID,
		"attempts", maxToggleAttempts,
	)
	return nil, errors.NewConflictError("attendance record was modified concurrently, please retry")
}

// toggleOnce runs one load-mutate-store cycle. A conflict error from either
// the duplicate-key insert race or a stale version tells the caller to retry.
func (uc *TogglePunchUseCase) toggleOnce(
	ctx context.Context,
	userID uint,
	date, now time.Time,
) (*attendance.AttendanceDay, attendance.PunchDirection, error) {
	day, err := uc.attendanceRepo.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to load attendance day",
				"user_id", userID,
				"error", err,
			)
			return nil, "", errors.NewInternalError("failed to load attendance record")
		}

		day, err = attendance.NewAttendanceDay(userID, date)
		if err != nil {
			return nil, "", errors.NewValidationError(err.Error())
		}

		direction, err := day.Punch(now)
		if err != nil {
			return nil, "", errors.NewInternalError(err.Error())
		}

		if err := uc.attendanceRepo.Create(ctx, day); err != nil {
			if errors.IsConflictError(err) {
				// another request created the day first; reload and retry
				return nil, "", err
			}
			uc.logger.Errorw("failed to create attendance day",
				"user_id", userID,
				"error", err,
			)
			return nil, "", errors.NewInternalError("failed to save attendance record")
		}
		return day, direction, nil
	}

	direction, err := day.Punch(now)
	if err != nil {
		return nil, "", errors.NewInternalError(err.Error())
	}

	if err := uc.attendanceRepo.UpdateWithVersion(ctx, day); err != nil {
		if errors.IsConflictError(err) {
			return nil, "", err
		}
		uc.logger.Errorw("failed to update attendance day",
			"user_id", userID,
			"day_id", day.ID(),
			"error", err,
		)
		return nil, "", errors.NewInternalError("failed to save attendance record")
	}
	return day, direction, nil
}
