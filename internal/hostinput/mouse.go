//go:build windows

// Package hostinput injects pointer and key input into the host desktop.
package hostinput

import (
	"fmt"

	"github.com/lxn/win"
)

// MoveRel moves the cursor by a relative delta.
func (w *WinInjector) MoveRel(dx, dy int) error {
	if dx == 0 && dy == 0 {
		return nil
	}
	return sendMouseInput(win.MOUSEEVENTF_MOVE, int32(dx), int32(dy), 0)
}

// MoveAbs moves the cursor to an absolute screen coordinate.
func (w *WinInjector) MoveAbs(x, y int) error {
	dx, dy := mapAbsolute(x, y)
	flags := uint32(win.MOUSEEVENTF_MOVE | win.MOUSEEVENTF_ABSOLUTE | win.MOUSEEVENTF_VIRTUALDESK)
	if err := sendMouseInput(flags, dx, dy, 0); err != nil {
		if win.SetCursorPos(int32(x), int32(y)) {
			return nil
		}
		return err
	}
	win.SetCursorPos(int32(x), int32(y))
	return nil
}

// CursorPos returns the current cursor position in screen coordinates.
func (w *WinInjector) CursorPos() (int, int, error) {
	var pt win.POINT
	if !win.GetCursorPos(&pt) {
		return 0, 0, fmt.Errorf("GetCursorPos failed: error %d", win.GetLastError())
	}
	return int(pt.X), int(pt.Y), nil
}

// mapAbsolute converts screen coordinates to the SendInput absolute range.
func mapAbsolute(x, y int) (int32, int32) {
	vx := win.GetSystemMetrics(win.SM_XVIRTUALSCREEN)
	vy := win.GetSystemMetrics(win.SM_YVIRTUALSCREEN)
	vw := win.GetSystemMetrics(win.SM_CXVIRTUALSCREEN)
	vh := win.GetSystemMetrics(win.SM_CYVIRTUALSCREEN)
	if vw <= 1 {
		vw = 2
	}
	if vh <= 1 {
		vh = 2
	}
	dx := (int64(x) - int64(vx)) * 65535 / int64(vw-1)
	dy := (int64(y) - int64(vy)) * 65535 / int64(vh-1)
	return int32(dx), int32(dy)
}
