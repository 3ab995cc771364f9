package dto

import (
	"time"

	"fieldpulse/internal/domain/attendance"
	"fieldpulse/internal/shared/biztime"
)

// AttendanceDaySummary is the read model returned by the toggle and today
// endpoints and carried in attendance-update broadcasts.
type AttendanceDaySummary struct {
	UserID              uint                      `json:"userId"`
	Date                string                    `json:"date"`
	Status              string                    `json:"status"`
	Sessions            []attendance.PunchSession `json:"sessions"`
	CurrentSessionIndex int                       `json:"currentSessionIndex"`
	ActiveSession       *attendance.PunchSession  `json:"activeSession,omitempty"`
	FirstPunchIn        *time.Time                `json:"firstPunchIn,omitempty"`
	LastPunchOut        *time.Time                `json:"lastPunchOut,omitempty"`
	TotalWorkingMinutes int                       `json:"totalWorkingMinutes"`
	TotalBreakMinutes   int                       `json:"totalBreakMinutes"`
	AutoBreaks          []attendance.Break        `json:"autoBreaks"`
}

// NewAttendanceDaySummary builds the summary from the aggregate. The date is
// rendered as the business-timezone calendar day.
func NewAttendanceDaySummary(day *attendance.AttendanceDay) *AttendanceDaySummary {
	return &AttendanceDaySummary{
		UserID:              day.UserID(),
		Date:                biztime.FormatDate(day.Date()),
		Status:              string(day.Status()),
		Sessions:            day.Sessions(),
		CurrentSessionIndex: day.CurrentSessionIndex(),
		ActiveSession:       day.ActiveSession(),
		FirstPunchIn:        day.FirstPunchIn(),
		LastPunchOut:        day.LastPunchOut(),
		TotalWorkingMinutes: day.TotalWorkingMinutes(),
		TotalBreakMinutes:   day.TotalBreakMinutes(),
		AutoBreaks:          day.AutoBreaks(),
	}
}
