package models

import (
	"time"

	"fieldpulse/internal/shared/constants"
)

// DeviceBindingModel links an enrolled device to its user and carries the
// display identity used in broadcasts. Rows are written by the device
// enrollment system; this service only reads them.
type DeviceBindingModel struct {
	ID        uint   `gorm:"primarykey"`
	DeviceID  string `gorm:"type:varchar(128);not null;uniqueIndex:idx_binding_device"`
	UserID    uint   `gorm:"not null;index:idx_binding_user"`
	UserName  string `gorm:"type:varchar(255)"`
	UserEmail string `gorm:"type:varchar(255)"`
	UserRole  string `gorm:"type:varchar(64)"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (DeviceBindingModel) TableName() string {
	return constants.TableDeviceBindings
}
