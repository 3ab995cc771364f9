package dto

// IngestLocationRequest is the location-event request body. Latitude and
// longitude are pointers so that a missing field fails validation instead of
// silently reading as zero. Any client-supplied timestamp is ignored.
type IngestLocationRequest struct {
	DeviceID  string                   `json:"deviceId" binding:"required"`
	Latitude  *float64                 `json:"latitude" binding:"required" validate:"required,latitude"`
	Longitude *float64                 `json:"longitude" binding:"required" validate:"required,longitude"`
	UserID    *uint                    `json:"userId"`
	EventType string                   `json:"eventType"`
	Timestamp *string                  `json:"timestamp"`
	Metadata  *LocationMetadataRequest `json:"metadata"`
}

// LocationMetadataRequest carries optional sensor readings on a ping.
type LocationMetadataRequest struct {
	Accuracy     *float64 `json:"accuracy"`
	BatteryLevel *float64 `json:"batteryLevel" validate:"omitempty,gte=0,lte=100"`
	NetworkType  *string  `json:"networkType"`
	Speed        *float64 `json:"speed" validate:"omitempty,gte=0"`
}

// CleanupConfigRequest reconfigures the retention sweeper at runtime.
type CleanupConfigRequest struct {
	RetentionHours *int `json:"retentionHours" validate:"omitempty,gt=0"`
	IntervalHours  *int `json:"intervalHours" validate:"omitempty,gt=0"`
}
