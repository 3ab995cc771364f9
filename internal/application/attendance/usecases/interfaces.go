package usecases

// Broadcaster pushes real-time events to connected stream consumers.
// Implementations never block; delivery is best effort.
type Broadcaster interface {
	EmitToUser(userID uint, event string, payload any)
	EmitToGroup(group string, event string, payload any)
}
