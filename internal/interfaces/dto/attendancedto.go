package dto

// TogglePunchRequest is the toggle-punch request body.
type TogglePunchRequest struct {
	UserID uint `json:"userId" binding:"required" validate:"required,gt=0"`
}
