package location

import "time"

// DeviceBinding links a device to a user and carries the display identity used
// when broadcasting that user's location. Bindings are managed by device
// enrollment outside this service; here they are read-only.
type DeviceBinding struct {
	id        uint
	deviceID  string
	userID    uint
	userName  string
	userEmail string
	userRole  string
	active    bool
	createdAt time.Time
}

// ReconstructDeviceBinding recreates a binding from persisted state.
func ReconstructDeviceBinding(
	id uint,
	deviceID string,
	userID uint,
	userName, userEmail, userRole string,
	active bool,
	createdAt time.Time,
) *DeviceBinding {
	return &DeviceBinding{
		id:        id,
		deviceID:  deviceID,
		userID:    userID,
		userName:  userName,
		userEmail: userEmail,
		userRole:  userRole,
		active:    active,
		createdAt: createdAt,
	}
}

// Getters
func (b *DeviceBinding) ID() uint             { return b.id }
func (b *DeviceBinding) DeviceID() string     { return b.deviceID }
func (b *DeviceBinding) UserID() uint         { return b.userID }
func (b *DeviceBinding) UserName() string     { return b.userName }
func (b *DeviceBinding) UserEmail() string    { return b.userEmail }
func (b *DeviceBinding) UserRole() string     { return b.userRole }
func (b *DeviceBinding) IsActive() bool       { return b.active }
func (b *DeviceBinding) CreatedAt() time.Time { return b.createdAt }
