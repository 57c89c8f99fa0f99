//go:build !windows

// Package monitor describes display geometry and enumeration.
package monitor

import "fmt"

// List returns an error on non-Windows platforms.
func List() ([]Monitor, error) {
	return nil, fmt.Errorf("monitor enumeration is only supported on Windows")
}
