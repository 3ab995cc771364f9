package attendance

import (
	"context"
	"time"
)

// Repository defines the persistence interface for attendance days.
type Repository interface {
	// FindByUserAndDate returns the day keyed by user and UTC day-start date.
	// Returns a not-found error when no row exists.
	FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*AttendanceDay, error)

	// Create inserts a new day. A duplicate (user, date) pair surfaces as a
	// conflict error so callers can reload and retry.
	Create(ctx context.Context, day *AttendanceDay) error

	// UpdateWithVersion persists the day only if the stored version still
	// matches the aggregate's version, incrementing it on success. A stale
	// version surfaces as a conflict error.
	UpdateWithVersion(ctx context.Context, day *AttendanceDay) error
}
