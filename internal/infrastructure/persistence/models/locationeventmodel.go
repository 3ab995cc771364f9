package models

import (
	"time"

	"fieldpulse/internal/shared/constants"
)

// LocationEventModel represents the append-only location event stream.
// UserID is nullable: unattributed pings are still recorded.
type LocationEventModel struct {
	ID           uint    `gorm:"primarykey"`
	UserID       *uint   `gorm:"index:idx_location_user"`
	DeviceID     string  `gorm:"type:varchar(128);not null;index:idx_device_ts"`
	EventType    string  `gorm:"type:varchar(32);not null;default:'ping'"`
	Latitude     float64 `gorm:"not null"`
	Longitude    float64 `gorm:"not null"`
	Accuracy     *float64
	BatteryLevel *float64
	NetworkType  *string   `gorm:"type:varchar(32)"`
	Speed        *float64
	Timestamp    time.Time `gorm:"not null;index:idx_device_ts;index:idx_location_ts"` // server-resolved, drives retention
	CreatedAt    time.Time
}

// TableName specifies the table name for GORM
func (LocationEventModel) TableName() string {
	return constants.TableLocationEvents
}
