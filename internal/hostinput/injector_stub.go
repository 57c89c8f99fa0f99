//go:build !windows

// Package hostinput injects pointer and key input into the host desktop.
package hostinput

import "errors"

// ErrUnsupported indicates host input injection is not available.
var ErrUnsupported = errors.New("hostinput is only supported on Windows")

// NoopInjector is a placeholder injector for non-Windows builds.
type NoopInjector struct{}

// NewInjector returns a non-functional injector on non-Windows platforms.
func NewInjector() (Injector, error) {
	return &NoopInjector{}, ErrUnsupported
}

// MoveRel returns ErrUnsupported.
func (n *NoopInjector) MoveRel(dx, dy int) error {
	_ = dx
	_ = dy
	return ErrUnsupported
}

// MoveAbs returns ErrUnsupported.
func (n *NoopInjector) MoveAbs(x, y int) error {
	_ = x
	_ = y
	return ErrUnsupported
}

// CursorPos returns ErrUnsupported.
func (n *NoopInjector) CursorPos() (int, int, error) {
	return 0, 0, ErrUnsupported
}

// KeyDown returns ErrUnsupported.
func (n *NoopInjector) KeyDown(name string) error {
	_ = name
	return ErrUnsupported
}

// KeyUp returns ErrUnsupported.
func (n *NoopInjector) KeyUp(name string) error {
	_ = name
	return ErrUnsupported
}
