package testutil

import (
	"time"

	"github.com/frudas24/touchstick/internal/joystick"
)

// FakeTask is a recorded scheduler entry tests can fire by hand.
type FakeTask struct {
	Fn       func()
	Interval time.Duration
	Stopped  bool
}

// Stop marks the task as canceled.
func (t *FakeTask) Stop() { t.Stopped = true }

// FakeScheduler implements joystick.Scheduler and records planted tasks
// instead of running them.
type FakeScheduler struct {
	Once    []*FakeTask
	Repeats []*FakeTask
}

// Ensure FakeScheduler implements the interface.
var _ joystick.Scheduler = (*FakeScheduler)(nil)

// Schedule records a one-shot task.
func (s *FakeScheduler) Schedule(d time.Duration, fn func()) joystick.Task {
	task := &FakeTask{Fn: fn, Interval: d}
	s.Once = append(s.Once, task)
	return task
}

// Repeat records a repeating task.
func (s *FakeScheduler) Repeat(interval time.Duration, fn func()) joystick.Task {
	task := &FakeTask{Fn: fn, Interval: interval}
	s.Repeats = append(s.Repeats, task)
	return task
}
