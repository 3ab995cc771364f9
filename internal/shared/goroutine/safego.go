// Package goroutine launches background work with panic containment so a
// failing broadcast or sweep cannot take the process down.
package goroutine

import (
	"runtime/debug"

	"fieldpulse/internal/shared/logger"
)

// SafeGo runs fn on a new goroutine and converts any panic into an error log
// tagged with name.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panic recovered",
					"name", name,
					"panic", r,
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
