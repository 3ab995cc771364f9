package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fieldpulse/internal/domain/attendance"
	"fieldpulse/internal/shared/constants"
	"fieldpulse/internal/shared/errors"
	"fieldpulse/internal/shared/logger"
)

type mockAttendanceRepository struct {
	mock.Mock
}

func (m *mockAttendanceRepository) FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*attendance.AttendanceDay, error) {
	args := m.Called(ctx, userID, date)
	if day := args.Get(0); day != nil {
		return day.(*attendance.AttendanceDay), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAttendanceRepository) Create(ctx context.Context, day *attendance.AttendanceDay) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

func (m *mockAttendanceRepository) UpdateWithVersion(ctx context.Context, day *attendance.AttendanceDay) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

type mockBroadcaster struct {
	mock.Mock
}

func (m *mockBroadcaster) EmitToUser(userID uint, event string, payload any) {
	m.Called(userID, event, payload)
}

func (m *mockBroadcaster) EmitToGroup(group string, event string, payload any) {
	m.Called(group, event, payload)
}

func openDay(t *testing.T, userID uint) *attendance.AttendanceDay {
	t.Helper()
	day, err := attendance.NewAttendanceDay(userID, time.Now().UTC())
	require.NoError(t, err)
	_, err = day.Punch(time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	day.SetID(1)
	return day
}

func TestTogglePunchUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("first punch of the day creates the record", func(t *testing.T) {
		repo := new(mockAttendanceRepository)
		broadcaster := new(mockBroadcaster)
		uc := NewTogglePunchUseCase(repo, broadcaster, logger.NewLogger())

		repo.On("FindByUserAndDate", ctx, uint(1), mock.Anything).
			Return(nil, errors.NewNotFoundError("attendance day not found")).Once()
		repo.On("Create", ctx, mock.Anything).Return(nil).Once()
		broadcaster.On("EmitToUser", uint(1), constants.EventAttendanceUpdate, mock.Anything).Once()

		summary, err := uc.Execute(ctx, TogglePunchCommand{UserID: 1})

		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusPunchedIn), summary.Status)
		require.Len(t, summary.Sessions, 1)
		assert.Equal(t, 0, summary.CurrentSessionIndex)
		assert.NotNil(t, summary.ActiveSession)
		repo.AssertExpectations(t)
		broadcaster.AssertExpectations(t)
	})

	t.Run("punch out closes the open session", func(t *testing.T) {
		repo := new(mockAttendanceRepository)
		broadcaster := new(mockBroadcaster)
		uc := NewTogglePunchUseCase(repo, broadcaster, logger.NewLogger())

		repo.On("FindByUserAndDate", ctx, uint(1), mock.Anything).
			Return(openDay(t, 1), nil).Once()
		repo.On("UpdateWithVersion", ctx, mock.Anything).Return(nil).Once()
		broadcaster.On("EmitToUser", uint(1), constants.EventAttendanceUpdate, mock.Anything).Once()

		summary, err := uc.Execute(ctx, TogglePunchCommand{UserID: 1})

		require.NoError(t, err)
		assert.Nil(t, summary.ActiveSession)
		assert.Equal(t, -1, summary.CurrentSessionIndex)
		assert.NotNil(t, summary.LastPunchOut)
		assert.Equal(t, 60, summary.TotalWorkingMinutes)
		repo.AssertExpectations(t)
	})

	t.Run("retries on version conflict and succeeds", func(t *testing.T) {
		repo := new(mockAttendanceRepository)
		broadcaster := new(mockBroadcaster)
		uc := NewTogglePunchUseCase(repo, broadcaster, logger.NewLogger())

		repo.On("FindByUserAndDate", ctx, uint(1), mock.Anything).
			Return(openDay(t, 1), nil).Twice()
		repo.On("UpdateWithVersion", ctx, mock.Anything).
			Return(errors.NewConflictError("stale version")).Once()
		repo.On("UpdateWithVersion", ctx, mock.Anything).Return(nil).Once()
		broadcaster.On("EmitToUser", uint(1), constants.EventAttendanceUpdate, mock.Anything).Once()

		_, err := uc.Execute(ctx, TogglePunchCommand{UserID: 1})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("surfaces conflict after exhausting retries", func(t *testing.T) {
		repo := new(mockAttendanceRepository)
		broadcaster := new(mockBroadcaster)
		uc := NewTogglePunchUseCase(repo, broadcaster, logger.NewLogger())

		repo.On("FindByUserAndDate", ctx, uint(1), mock.Anything).
			Return(openDay(t, 1), nil).Times(3)
		repo.On("UpdateWithVersion", ctx, mock.Anything).
			Return(errors.NewConflictError("stale version")).Times(3)

		_, err := uc.Execute(ctx, TogglePunchCommand{UserID: 1})

		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
		broadcaster.AssertNotCalled(t, "EmitToUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("retries when another request created the day first", func(t *testing.T) {
		repo := new(mockAttendanceRepository)
		broadcaster := new(mockBroadcaster)
		uc := NewTogglePunchUseCase(repo, broadcaster, logger.NewLogger())

		repo.On("FindByUserAndDate", ctx, uint(1), mock.Anything).
			Return(nil, errors.NewNotFoundError("attendance day not found")).Once()
		repo.On("Create", ctx, mock.Anything).
			Return(errors.NewConflictError("duplicate attendance day")).Once()
		repo.On("FindByUserAndDate", ctx, uint(1), mock.Anything).
			Return(openDay(t, 1), nil).Once()
		repo.On("UpdateWithVersion", ctx, mock.Anything).Return(nil).Once()
		broadcaster.On("EmitToUser", uint(1), constants.EventAttendanceUpdate, mock.Anything).Once()

		_, err := uc.Execute(ctx, TogglePunchCommand{UserID: 1})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects zero user ID", func(t *testing.T) {
		repo := new(mockAttendanceRepository)
		broadcaster := new(mockBroadcaster)
		uc := NewTogglePunchUseCase(repo, broadcaster, logger.NewLogger())

		_, err := uc.Execute(ctx, TogglePunchCommand{UserID: 0})

		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		repo.AssertNotCalled(t, "FindByUserAndDate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("wraps repository failures as internal errors", func(t *testing.T) {
		repo := new(mockAttendanceRepository)
		broadcaster := new(mockBroadcaster)
		uc := NewTogglePunchUseCase(repo, broadcaster, logger.NewLogger())

		repo.On("FindByUserAndDate", ctx, uint(1), mock.Anything).
			Return(nil, errors.NewInternalError("connection refused")).Once()

		_, err := uc.Execute(ctx, TogglePunchCommand{UserID: 1})

		require.Error(t, err)
		assert.False(t, errors.IsConflictError(err))
	})
}
