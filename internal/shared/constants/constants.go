package constants

// Database table names.
const (
	TableAttendanceDays   = "attendance_days"
	TableLocationEvents   = "location_events"
	TableCurrentLocations = "current_locations"
	TableDeviceBindings   = "device_bindings"
)

// Broadcast event names.
const (
	EventAttendanceUpdate   = "attendance-update"
	EventUserLocationUpdate = "user-location-update"
)

// GroupAdmins is the broadcast group subscribed to by admin dashboards.
const GroupAdmins = "admins"
