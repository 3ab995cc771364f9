package attendance

import (
	"errors"
	"time"
)

// Status represents the attendance state of a user for one business day.
type Status string

const (
	StatusAbsent     Status = "absent"
	StatusPresent    Status = "present"
	StatusHalfDay    Status = "half_day"
	StatusLate       Status = "late"
	StatusOnLeave    Status = "on_leave"
	StatusPunchedIn  Status = "punched_in"
	StatusPunchedOut Status = "punched_out"
)

// Working-minute thresholds evaluated when a session closes.
const (
	FullDayMinutes = 480
	HalfDayMinutes = 240
)

// PunchDirection indicates what a Punch call did.
type PunchDirection string

const (
	PunchDirectionIn  PunchDirection = "in"
	PunchDirectionOut PunchDirection = "out"
)

// PunchSession is one punch-in/punch-out pair. PunchOut is nil while the
// session is open. DurationMinutes is only meaningful on closed sessions.
type PunchSession struct {
	PunchIn         time.Time  `json:"punchIn"`
	PunchOut        *time.Time `json:"punchOut,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
}

// IsOpen reports whether the session has not been punched out yet.
func (s PunchSession) IsOpen() bool {
	return s.PunchOut == nil
}

// Break is a derived idle gap between two consecutive closed sessions.
// Breaks are never entered directly; they are recomputed from sessions.
type Break struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
}

// AttendanceDay is the aggregate for one user's punches on one business day.
// The date field is the UTC instant of the business-timezone day start, which
// together with userID uniquely identifies the aggregate.
type AttendanceDay struct {
	id                  uint
	userID              uint
	date                time.Time
	sessions            []PunchSession
	currentSessionIndex int
	autoBreaks          []Break
	totalWorkingMinutes int
	totalBreakMinutes   int
	status              Status
	firstPunchIn        *time.Time
	lastPunchOut        *time.Time
	version             uint
	createdAt           time.Time
	updatedAt           time.Time
}

// NewAttendanceDay creates an empty day for a user. The day starts absent
// with no sessions and no open session index.
func NewAttendanceDay(userID uint, date time.Time) (*AttendanceDay, error) {
	if userID == 0 {
		return nil, errors.New("user ID is required")
	}
	if date.IsZero() {
		return nil, errors.New("date is required")
	}

	now := time.Now().UTC()
	return &AttendanceDay{
		userID:              userID,
		date:                date.UTC(),
		sessions:            []PunchSession{},
		currentSessionIndex: -1,
		autoBreaks:          []Break{},
		status:              StatusAbsent,
		version:             1,
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

// ReconstructAttendanceDay recreates an aggregate from persisted state.
func ReconstructAttendanceDay(
	id uint,
	userID uint,
	date time.Time,
	sessions []PunchSession,
	currentSessionIndex int,
	autoBreaks []Break,
	totalWorkingMinutes int,
	totalBreakMinutes int,
	status Status,
	firstPunchIn *time.Time,
	lastPunchOut *time.Time,
	version uint,
	createdAt time.Time,
	updatedAt time.Time,
) *AttendanceDay {
	if sessions == nil {
		sessions = []PunchSession{}
	}
	if autoBreaks == nil {
		autoBreaks = []Break{}
	}
	return &AttendanceDay{
		id:                  id,
		userID:              userID,
		date:                date,
		sessions:            sessions,
		currentSessionIndex: currentSessionIndex,
		autoBreaks:          autoBreaks,
		totalWorkingMinutes: totalWorkingMinutes,
		totalBreakMinutes:   totalBreakMinutes,
		status:              status,
		firstPunchIn:        firstPunchIn,
		lastPunchOut:        lastPunchOut,
		version:             version,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// Punch toggles the day's punch state at the given instant. With no open
// session it opens a new one; with an open session it closes it, recomputes
// durations, breaks, totals, and the day status.
func (a *AttendanceDay) Punch(now time.Time) (PunchDirection, error) {
	if now.IsZero() {
		return "", errors.New("punch time is required")
	}
	now = now.UTC()

	if a.currentSessionIndex >= 0 {
		a.closeSession(now)
		return PunchDirectionOut, nil
	}

	a.openSession(now)
	return PunchDirectionIn, nil
}

func (a *AttendanceDay) openSession(now time.Time) {
	a.sessions = append(a.sessions, PunchSession{PunchIn: now})
	a.currentSessionIndex = len(a.sessions) - 1
	if a.firstPunchIn == nil {
		t := now
		a.firstPunchIn = &t
	}
	a.status = StatusPunchedIn
	a.updatedAt = time.Now().UTC()
}

func (a *AttendanceDay) closeSession(now time.Time) {
	session := &a.sessions[a.currentSessionIndex]
	t := now
	session.PunchOut = &t
	session.DurationMinutes = minutesBetween(session.PunchIn, now)
	a.currentSessionIndex = -1
	a.lastPunchOut = &t

	a.recompute()

	switch {
	case a.totalWorkingMinutes >= FullDayMinutes:
		a.status = StatusPresent
	case a.totalWorkingMinutes >= HalfDayMinutes:
		a.status = StatusHalfDay
	default:
		a.status = StatusPunchedOut
	}
	a.updatedAt = time.Now().UTC()
}

// recompute refreshes totals and derived breaks from the session list.
func (a *AttendanceDay) recompute() {
	total := 0
	for _, s := range a.sessions {
		if !s.IsOpen() {
			total += s.DurationMinutes
		}
	}
	a.totalWorkingMinutes = total

	a.autoBreaks = DeriveBreaks(a.sessions)
	breakTotal := 0
	for _, b := range a.autoBreaks {
		breakTotal += b.DurationMinutes
	}
	a.totalBreakMinutes = breakTotal
}

// DeriveBreaks computes the idle gaps between consecutive sessions. A break
// exists between session i and i+1 when session i is closed and the whole-minute
// gap between its punch-out and the next punch-in is positive.
func DeriveBreaks(sessions []PunchSession) []Break {
	breaks := []Break{}
	for i := 0; i+1 < len(sessions); i++ {
		if sessions[i].PunchOut == nil {
			continue
		}
		gap := minutesBetween(*sessions[i].PunchOut, sessions[i+1].PunchIn)
		if gap > 0 {
			breaks = append(breaks, Break{
				Start:           *sessions[i].PunchOut,
				End:             sessions[i+1].PunchIn,
				DurationMinutes: gap,
			})
		}
	}
	return breaks
}

// minutesBetween returns whole minutes from start to end, clamped at zero so
// clock skew can never produce a negative duration.
func minutesBetween(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// HasOpenSession reports whether a session is currently open.
func (a *AttendanceDay) HasOpenSession() bool {
	return a.currentSessionIndex >= 0
}

// ActiveSession returns a copy of the open session, or nil when none is open.
func (a *AttendanceDay) ActiveSession() *PunchSession {
	if a.currentSessionIndex < 0 || a.currentSessionIndex >= len(a.sessions) {
		return nil
	}
	s := a.sessions[a.currentSessionIndex]
	return &s
}

// SetID sets the aggregate ID after persistence.
func (a *AttendanceDay) SetID(id uint) {
	a.id = id
}

// SetVersion sets the persisted optimistic-lock version.
func (a *AttendanceDay) SetVersion(version uint) {
	a.version = version
}

// Getters
func (a *AttendanceDay) ID() uint                  { return a.id }
func (a *AttendanceDay) UserID() uint              { return a.userID }
func (a *AttendanceDay) Date() time.Time           { return a.date }
func (a *AttendanceDay) CurrentSessionIndex() int  { return a.currentSessionIndex }
func (a *AttendanceDay) TotalWorkingMinutes() int  { return a.totalWorkingMinutes }
func (a *AttendanceDay) TotalBreakMinutes() int    { return a.totalBreakMinutes }
func (a *AttendanceDay) Status() Status            { return a.status }
func (a *AttendanceDay) FirstPunchIn() *time.Time  { return a.firstPunchIn }
func (a *AttendanceDay) LastPunchOut() *time.Time  { return a.lastPunchOut }
func (a *AttendanceDay) Version() uint             { return a.version }
func (a *AttendanceDay) CreatedAt() time.Time      { return a.createdAt }
func (a *AttendanceDay) UpdatedAt() time.Time      { return a.updatedAt }

// Sessions returns a copy of the session list.
func (a *AttendanceDay) Sessions() []PunchSession {
	out := make([]PunchSession, len(a.sessions))
	copy(out, a.sessions)
	return out
}

// AutoBreaks returns a copy of the derived break list.
func (a *AttendanceDay) AutoBreaks() []Break {
	out := make([]Break, len(a.autoBreaks))
	copy(out, a.autoBreaks)
	return out
}
