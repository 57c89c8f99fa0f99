// Package hostinput injects pointer and key input into the host desktop.
package hostinput

// Injector defines the input operations used by the drive layer.
type Injector interface {
	MoveRel(dx, dy int) error
	MoveAbs(x, y int) error
	CursorPos() (x, y int, err error)
	KeyDown(name string) error
	KeyUp(name string) error
}

// keyNames lists the key identifiers an Injector accepts.
var keyNames = map[string]bool{
	"up":    true,
	"down":  true,
	"left":  true,
	"right": true,
	"w":     true,
	"a":     true,
	"s":     true,
	"d":     true,
	"shift": true,
	"space": true,
	"enter": true,
}

// ValidKey reports whether name is a key identifier an Injector accepts.
func ValidKey(name string) bool {
	return keyNames[name]
}
