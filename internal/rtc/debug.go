// Package rtc provides WebRTC signaling and the joystick data channel.
package rtc

import (
	"log"
	"sync/atomic"
)

// debugLogs controls whether verbose signaling and channel logs are emitted.
var debugLogs atomic.Bool

// SetDebugLogging enables/disables verbose signaling and data-channel logs.
func SetDebugLogging(enabled bool) {
	debugLogs.Store(enabled)
}

// debugf logs one line when debug logging is enabled.
func debugf(format string, args ...any) {
	if debugLogs.Load() {
		log.Printf(format, args...)
	}
}
