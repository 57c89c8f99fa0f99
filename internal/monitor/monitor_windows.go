//go:build windows

// Package monitor describes display geometry and enumeration.
package monitor

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

// List returns the available displays in enumeration order, 1-based indexes.
func List() ([]Monitor, error) {
	enum := &displayEnum{}
	callback := syscall.NewCallback(enum.visit)

	if ok := win.EnumDisplayMonitors(0, nil, callback, 0); !ok {
		return nil, fmt.Errorf("EnumDisplayMonitors failed: %w", syscall.GetLastError())
	}
	if len(enum.list) == 0 {
		return nil, fmt.Errorf("no monitors detected")
	}
	return enum.list, nil
}

type displayEnum struct {
	list []Monitor
}

// visit records one display and continues the enumeration.
func (e *displayEnum) visit(hMonitor win.HMONITOR, hdc win.HDC, rect *win.RECT, lparam uintptr) uintptr {
	var info win.MONITORINFO
	info.CbSize = uint32(unsafe.Sizeof(info))
	if !win.GetMonitorInfo(hMonitor, &info) {
		return 1
	}

	bounds := info.RcMonitor
	e.list = append(e.list, Monitor{
		Index:   len(e.list) + 1,
		X:       int(bounds.Left),
		Y:       int(bounds.Top),
		W:       int(bounds.Right - bounds.Left),
		H:       int(bounds.Bottom - bounds.Top),
		Primary: info.DwFlags&win.MONITORINFOF_PRIMARY != 0,
	})
	return 1
}
