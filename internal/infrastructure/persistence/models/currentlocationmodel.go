package models

import (
	"time"

	"fieldpulse/internal/shared/constants"
)

// CurrentLocationModel holds the latest known position per device, replaced
// on every ping.
type CurrentLocationModel struct {
	ID           uint    `gorm:"primarykey"`
	UserID       *uint   `gorm:"index:idx_current_user"`
	DeviceID     string  `gorm:"type:varchar(128);not null;uniqueIndex:idx_current_device"`
	Latitude     float64 `gorm:"not null"`
	Longitude    float64 `gorm:"not null"`
	Accuracy     *float64
	BatteryLevel *float64
	NetworkType  *string   `gorm:"type:varchar(32)"`
	Speed        *float64
	Timestamp    time.Time `gorm:"not null;index:idx_current_ts"`
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (CurrentLocationModel) TableName() string {
	return constants.TableCurrentLocations
}
