package models

import (
	"time"

	"gorm.io/datatypes"

	"fieldpulse/internal/shared/constants"
)

// AttendanceDayModel represents the database persistence model for one user's
// attendance on one business day. Sessions and derived breaks are stored as
// JSON documents since they are always read and written as a whole.
type AttendanceDayModel struct {
	ID                  uint      `gorm:"primarykey"`
	UserID              uint      `gorm:"not null;uniqueIndex:idx_user_date"`
	Date                time.Time `gorm:"not null;uniqueIndex:idx_user_date"` // UTC instant of business-day start
	Sessions            datatypes.JSON
	CurrentSessionIndex int `gorm:"not null;default:-1"`
	AutoBreaks          datatypes.JSON
	TotalWorkingMinutes int        `gorm:"not null;default:0"`
	TotalBreakMinutes   int        `gorm:"not null;default:0"`
	Status              string     `gorm:"type:varchar(20);not null;default:'absent'"`
	FirstPunchIn        *time.Time
	LastPunchOut        *time.Time
	Version             uint `gorm:"not null;default:1"` // optimistic lock
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the table name for GORM
func (AttendanceDayModel) TableName() string {
	return constants.TableAttendanceDays
}
