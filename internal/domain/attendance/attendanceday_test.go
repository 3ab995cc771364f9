package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, userID uint) *AttendanceDay {
	t.Helper()
	day, err := NewAttendanceDay(userID, time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	return day
}

func TestNewAttendanceDay(t *testing.T) {
	t.Run("creates empty absent day", func(t *testing.T) {
		day := mustDay(t, 42)

		assert.Equal(t, uint(42), day.UserID())
		assert.Equal(t, StatusAbsent, day.Status())
		assert.Empty(t, day.Sessions())
		assert.Equal(t, -1, day.CurrentSessionIndex())
		assert.False(t, day.HasOpenSession())
		assert.Nil(t, day.FirstPunchIn())
		assert.Nil(t, day.LastPunchOut())
		assert.Equal(t, uint(1), day.Version())
	})

	t.Run("rejects zero user ID", func(t *testing.T) {
		_, err := NewAttendanceDay(0, time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		_, err := NewAttendanceDay(1, time.Time{})
		assert.Error(t, err)
	})
}

func TestAttendanceDayPunch(t *testing.T) {
	base := time.Date(2025, 3, 11, 3, 30, 0, 0, time.UTC)

	t.Run("first punch opens a session", func(t *testing.T) {
		day := mustDay(t, 1)

		dir, err := day.Punch(base)
		require.NoError(t, err)

		assert.Equal(t, PunchDirectionIn, dir)
		assert.Equal(t, StatusPunchedIn, day.Status())
		assert.True(t, day.HasOpenSession())
		assert.Equal(t, 0, day.CurrentSessionIndex())
		require.NotNil(t, day.FirstPunchIn())
		assert.Equal(t, base, *day.FirstPunchIn())
		require.NotNil(t, day.ActiveSession())
		assert.True(t, day.ActiveSession().IsOpen())
	})

	t.Run("second punch closes the session", func(t *testing.T) {
		day := mustDay(t, 1)
		_, err := day.Punch(base)
		require.NoError(t, err)

		dir, err := day.Punch(base.Add(95 * time.Minute))
		require.NoError(t, err)

		assert.Equal(t, PunchDirectionOut, dir)
		assert.False(t, day.HasOpenSession())
		assert.Nil(t, day.ActiveSession())
		assert.Equal(t, 95, day.TotalWorkingMinutes())
		assert.Equal(t, StatusPunchedOut, day.Status())
		require.NotNil(t, day.LastPunchOut())
		assert.Equal(t, base.Add(95*time.Minute), *day.LastPunchOut())
	})

	t.Run("duration floors partial minutes", func(t *testing.T) {
		day := mustDay(t, 1)
		_, _ = day.Punch(base)
		_, err := day.Punch(base.Add(10*time.Minute + 59*time.Second))
		require.NoError(t, err)

		assert.Equal(t, 10, day.TotalWorkingMinutes())
	})

	t.Run("punch out before punch in clamps to zero", func(t *testing.T) {
		day := mustDay(t, 1)
		_, _ = day.Punch(base)
		_, err := day.Punch(base.Add(-5 * time.Minute))
		require.NoError(t, err)

		assert.Equal(t, 0, day.TotalWorkingMinutes())
		assert.Equal(t, StatusPunchedOut, day.Status())
	})

	t.Run("punch out at same instant yields zero-minute session", func(t *testing.T) {
		day := mustDay(t, 1)
		_, _ = day.Punch(base)
		_, err := day.Punch(base)
		require.NoError(t, err)

		sessions := day.Sessions()
		require.Len(t, sessions, 1)
		assert.False(t, sessions[0].IsOpen())
		assert.Equal(t, 0, sessions[0].DurationMinutes)
	})

	t.Run("full day threshold marks present", func(t *testing.T) {
		day := mustDay(t, 1)
		_, _ = day.Punch(base)
		_, err := day.Punch(base.Add(480 * time.Minute))
		require.NoError(t, err)

		assert.Equal(t, StatusPresent, day.Status())
	})

	t.Run("half day threshold marks half_day", func(t *testing.T) {
		day := mustDay(t, 1)
		_, _ = day.Punch(base)
		_, err := day.Punch(base.Add(240 * time.Minute))
		require.NoError(t, err)

		assert.Equal(t, StatusHalfDay, day.Status())
	})

	t.Run("one minute under half day stays punched_out", func(t *testing.T) {
		day := mustDay(t, 1)
		_, _ = day.Punch(base)
		_, err := day.Punch(base.Add(239 * time.Minute))
		require.NoError(t, err)

		assert.Equal(t, StatusPunchedOut, day.Status())
	})

	t.Run("thresholds accumulate across sessions", func(t *testing.T) {
		day := mustDay(t, 1)
		_, _ = day.Punch(base)
		_, _ = day.Punch(base.Add(300 * time.Minute))
		_, _ = day.Punch(base.Add(360 * time.Minute))
		_, err := day.Punch(base.Add(540 * time.Minute))
		require.NoError(t, err)

		assert.Equal(t, 480, day.TotalWorkingMinutes())
		assert.Equal(t, StatusPresent, day.Status())
	})

	t.Run("reopening keeps firstPunchIn and lastPunchOut", func(t *testing.T) {
		day := mustDay(t, 1)
		_, _ = day.Punch(base)
		_, _ = day.Punch(base.Add(60 * time.Minute))
		dir, err := day.Punch(base.Add(90 * time.Minute))
		require.NoError(t, err)

		assert.Equal(t, PunchDirectionIn, dir)
		assert.Equal(t, StatusPunchedIn, day.Status())
		assert.Equal(t, base, *day.FirstPunchIn())
		assert.Equal(t, base.Add(60*time.Minute), *day.LastPunchOut())
		assert.Equal(t, 1, day.CurrentSessionIndex())
	})

	t.Run("rejects zero punch time", func(t *testing.T) {
		day := mustDay(t, 1)
		_, err := day.Punch(time.Time{})
		assert.Error(t, err)
	})
}

func TestDeriveBreaks(t *testing.T) {
	base := time.Date(2025, 3, 11, 3, 30, 0, 0, time.UTC)
	at := func(m int) time.Time { return base.Add(time.Duration(m) * time.Minute) }
	closed := func(in, out int) PunchSession {
		end := at(out)
		return PunchSession{PunchIn: at(in), PunchOut: &end, DurationMinutes: out - in}
	}

	t.Run("gap between closed sessions becomes a break", func(t *testing.T) {
		breaks := DeriveBreaks([]PunchSession{closed(0, 60), closed(90, 150)})

		require.Len(t, breaks, 1)
		assert.Equal(t, at(60), breaks[0].Start)
		assert.Equal(t, at(90), breaks[0].End)
		assert.Equal(t, 30, breaks[0].DurationMinutes)
	})

	t.Run("zero gap produces no break", func(t *testing.T) {
		breaks := DeriveBreaks([]PunchSession{closed(0, 60), closed(60, 120)})
		assert.Empty(t, breaks)
	})

	t.Run("sub-minute gap floors to no break", func(t *testing.T) {
		out := at(60)
		next := out.Add(45 * time.Second)
		breaks := DeriveBreaks([]PunchSession{
			{PunchIn: at(0), PunchOut: &out, DurationMinutes: 60},
			{PunchIn: next},
		})
		assert.Empty(t, breaks)
	})

	t.Run("open first session is skipped", func(t *testing.T) {
		breaks := DeriveBreaks([]PunchSession{{PunchIn: at(0)}, closed(120, 180)})
		assert.Empty(t, breaks)
	})

	t.Run("break into an open session still counts", func(t *testing.T) {
		breaks := DeriveBreaks([]PunchSession{closed(0, 60), {PunchIn: at(75)}})

		require.Len(t, breaks, 1)
		assert.Equal(t, 15, breaks[0].DurationMinutes)
	})

	t.Run("multiple gaps", func(t *testing.T) {
		breaks := DeriveBreaks([]PunchSession{closed(0, 60), closed(75, 120), closed(180, 240)})

		require.Len(t, breaks, 2)
		assert.Equal(t, 15, breaks[0].DurationMinutes)
		assert.Equal(t, 60, breaks[1].DurationMinutes)
	})

	t.Run("empty and single session lists", func(t *testing.T) {
		assert.Empty(t, DeriveBreaks(nil))
		assert.Empty(t, DeriveBreaks([]PunchSession{closed(0, 60)}))
	})
}

func TestAttendanceDayBreakTotals(t *testing.T) {
	base := time.Date(2025, 3, 11, 3, 30, 0, 0, time.UTC)

	day := mustDay(t, 7)
	_, _ = day.Punch(base)
	_, _ = day.Punch(base.Add(60 * time.Minute))
	_, _ = day.Punch(base.Add(90 * time.Minute))
	_, _ = day.Punch(base.Add(150 * time.Minute))

	assert.Equal(t, 120, day.TotalWorkingMinutes())
	assert.Equal(t, 30, day.TotalBreakMinutes())
	require.Len(t, day.AutoBreaks(), 1)
	assert.Equal(t, 30, day.AutoBreaks()[0].DurationMinutes)
}

func TestReconstructAttendanceDay(t *testing.T) {
	base := time.Date(2025, 3, 11, 3, 30, 0, 0, time.UTC)
	out := base.Add(60 * time.Minute)
	sessions := []PunchSession{{PunchIn: base, PunchOut: &out, DurationMinutes: 60}}

	day := ReconstructAttendanceDay(
		9, 42, base, sessions, -1, nil, 60, 0,
		StatusPunchedOut, &base, &out, 3, base, out,
	)

	assert.Equal(t, uint(9), day.ID())
	assert.Equal(t, uint(42), day.UserID())
	assert.Equal(t, uint(3), day.Version())
	assert.NotNil(t, day.AutoBreaks())

	// a reconstructed day keeps toggling from where it left off
	dir, err := day.Punch(out.Add(30 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, PunchDirectionIn, dir)
	assert.Equal(t, 1, day.CurrentSessionIndex())
}
