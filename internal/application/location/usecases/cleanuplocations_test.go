package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fieldpulse/internal/shared/errors"
	"fieldpulse/internal/shared/logger"
)

func TestCleanupLocationsUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes expired rows and reports counts", func(t *testing.T) {
		events := new(mockEventRepository)
		currents := new(mockCurrentRepository)
		uc := NewCleanupLocationsUseCase(events, currents, 24, logger.NewLogger())

		events.On("DeleteBefore", ctx, mock.Anything).Return(int64(120), nil).Once()
		currents.On("DeleteBefore", ctx, mock.Anything).Return(int64(4), nil).Once()

		result, err := uc.Execute(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(120), result.DeletedEvents)
		assert.Equal(t, int64(4), result.DeletedLocations)

		cutoff := events.Calls[0].Arguments.Get(1).(time.Time)
		assert.WithinDuration(t, time.Now().UTC().Add(-24*time.Hour), cutoff, time.Minute)
	})

	t.Run("second sweep with no new data deletes nothing", func(t *testing.T) {
		events := new(mockEventRepository)
		currents := new(mockCurrentRepository)
		uc := NewCleanupLocationsUseCase(events, currents, 24, logger.NewLogger())

		events.On("DeleteBefore", ctx, mock.Anything).Return(int64(0), nil).Once()
		currents.On("DeleteBefore", ctx, mock.Anything).Return(int64(0), nil).Once()

		result, err := uc.Execute(ctx)

		require.NoError(t, err)
		assert.Zero(t, result.DeletedEvents)
		assert.Zero(t, result.DeletedLocations)
	})

	t.Run("retention horizon is reconfigurable", func(t *testing.T) {
		events := new(mockEventRepository)
		currents := new(mockCurrentRepository)
		uc := NewCleanupLocationsUseCase(events, currents, 24, logger.NewLogger())

		require.NoError(t, uc.SetRetentionHours(6))
		assert.Equal(t, 6, uc.RetentionHours())

		events.On("DeleteBefore", ctx, mock.Anything).Return(int64(0), nil).Once()
		currents.On("DeleteBefore", ctx, mock.Anything).Return(int64(0), nil).Once()

		_, err := uc.Execute(ctx)
		require.NoError(t, err)

		cutoff := events.Calls[0].Arguments.Get(1).(time.Time)
		assert.WithinDuration(t, time.Now().UTC().Add(-6*time.Hour), cutoff, time.Minute)
	})

	t.Run("rejects non-positive retention", func(t *testing.T) {
		uc := NewCleanupLocationsUseCase(new(mockEventRepository), new(mockCurrentRepository), 24, logger.NewLogger())

		err := uc.SetRetentionHours(0)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.Equal(t, 24, uc.RetentionHours())
	})

	t.Run("delete failure surfaces as internal error", func(t *testing.T) {
		events := new(mockEventRepository)
		currents := new(mockCurrentRepository)
		uc := NewCleanupLocationsUseCase(events, currents, 24, logger.NewLogger())

		events.On("DeleteBefore", ctx, mock.Anything).
			Return(int64(0), errors.NewInternalError("connection refused")).Once()

		_, err := uc.Execute(ctx)

		require.Error(t, err)
		currents.AssertNotCalled(t, "DeleteBefore", mock.Anything, mock.Anything)
	})

	t.Run("defaults retention when constructed with zero", func(t *testing.T) {
		uc := NewCleanupLocationsUseCase(new(mockEventRepository), new(mockCurrentRepository), 0, logger.NewLogger())
		assert.Equal(t, DefaultRetentionHours, uc.RetentionHours())
	})
}
