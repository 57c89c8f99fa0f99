// Package joystick implements the touch joystick interaction engine.
package joystick

import "time"

// Task is a scheduled callback handle that can be canceled before it fires.
type Task interface {
	Stop()
}

// Scheduler plants cooperative timers on the event loop that owns the widget.
// Callbacks must run on that same loop; the widget is not safe for concurrent
// use from other goroutines.
type Scheduler interface {
	// Schedule runs fn once after d.
	Schedule(d time.Duration, fn func()) Task
	// Repeat runs fn every interval until the returned task is stopped.
	Repeat(interval time.Duration, fn func()) Task
}
