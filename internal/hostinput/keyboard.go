//go:build windows

// Package hostinput injects pointer and key input into the host desktop.
package hostinput

import (
	"fmt"

	"github.com/lxn/win"
)

// vkCodes maps key identifiers to virtual-key codes.
var vkCodes = map[string]uint16{
	"up":    win.VK_UP,
	"down":  win.VK_DOWN,
	"left":  win.VK_LEFT,
	"right": win.VK_RIGHT,
	"w":     'W',
	"a":     'A',
	"s":     'S',
	"d":     'D',
	"shift": win.VK_SHIFT,
	"space": win.VK_SPACE,
	"enter": win.VK_RETURN,
}

// extendedKeys marks keys that need the extended-key flag.
var extendedKeys = map[string]bool{
	"up":    true,
	"down":  true,
	"left":  true,
	"right": true,
}

// KeyDown presses the named key.
func (w *WinInjector) KeyDown(name string) error {
	vk, flags, err := lookupKey(name)
	if err != nil {
		return err
	}
	return sendKeyboardInput(win.KEYBDINPUT{WVk: vk, DwFlags: flags})
}

// KeyUp releases the named key.
func (w *WinInjector) KeyUp(name string) error {
	vk, flags, err := lookupKey(name)
	if err != nil {
		return err
	}
	return sendKeyboardInput(win.KEYBDINPUT{WVk: vk, DwFlags: flags | win.KEYEVENTF_KEYUP})
}

// lookupKey resolves a key identifier to its virtual-key code and flags.
func lookupKey(name string) (uint16, uint32, error) {
	vk, ok := vkCodes[name]
	if !ok {
		return 0, 0, fmt.Errorf("unknown key %q", name)
	}
	var flags uint32
	if extendedKeys[name] {
		flags = win.KEYEVENTF_EXTENDEDKEY
	}
	return vk, flags, nil
}
