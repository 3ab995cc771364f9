package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fieldpulse/internal/domain/attendance"
	"fieldpulse/internal/shared/errors"
	"fieldpulse/internal/shared/logger"
)

func TestGetTodayAttendanceUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored day", func(t *testing.T) {
		repo := new(mockAttendanceRepository)
		uc := NewGetTodayAttendanceUseCase(repo, logger.NewLogger())

		repo.On("FindByUserAndDate", ctx, uint(1), mock.Anything).
			Return(openDay(t, 1), nil).Once()

		summary, err := uc.Execute(ctx, GetTodayAttendanceCommand{UserID: 1})

		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusPunchedIn), summary.Status)
		require.Len(t, summary.Sessions, 1)
	})

	t.Run("synthesizes empty day when none exists", func(t *testing.T) {
		repo := new(mockAttendanceRepository)
		uc := NewGetTodayAttendanceUseCase(repo, logger.NewLogger())

		repo.On("FindByUserAndDate", ctx, uint(2), mock.Anything).
			Return(nil, errors.NewNotFoundError("attendance day not found")).Once()

		summary, err := uc.Execute(ctx, GetTodayAttendanceCommand{UserID: 2})

		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusAbsent), summary.Status)
		assert.Empty(t, summary.Sessions)
		assert.Equal(t, -1, summary.CurrentSessionIndex)
		assert.Nil(t, summary.FirstPunchIn)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects zero user ID", func(t *testing.T) {
		repo := new(mockAttendanceRepository)
		uc := NewGetTodayAttendanceUseCase(repo, logger.NewLogger())

		_, err := uc.Execute(ctx, GetTodayAttendanceCommand{UserID: 0})

		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}
