package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDayUTC(t *testing.T) {
	// 20:00 UTC is already past midnight in IST (UTC+05:30), so the business
	// day boundary lands on the next calendar date.
	input := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	got := StartOfDayUTC(input)

	assert.Equal(t, time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestStartOfDayUTCMidDay(t *testing.T) {
	input := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	got := StartOfDayUTC(input)

	assert.Equal(t, time.Date(2025, 3, 9, 18, 30, 0, 0, time.UTC), got)
}

func TestEndOfDayUTC(t *testing.T) {
	input := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	got := EndOfDayUTC(input)

	assert.Equal(t, time.Date(2025, 3, 10, 18, 29, 59, 999999999, time.UTC), got)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2025-03-11", FormatDate(time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-03-10", FormatDate(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)))
}

func TestParseDateInBizTimezone(t *testing.T) {
	got, err := ParseDateInBizTimezone("2025-03-11")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC), got)

	_, err = ParseDateInBizTimezone("11-03-2025")
	require.Error(t, err)
}

func TestNowUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NowUTC().Location())
}
