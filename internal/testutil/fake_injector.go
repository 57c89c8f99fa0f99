package testutil

import "github.com/frudas24/touchstick/internal/hostinput"

// Call records a single injected action.
type Call struct {
	Name string
	X    int
	Y    int
	Key  string
}

// FakeInjector implements hostinput.Injector and records calls for tests. It
// tracks a fake cursor so cage behavior can be asserted; setting Err makes
// every operation fail with it.
type FakeInjector struct {
	Calls []Call

	CursorX int
	CursorY int
	Err     error
}

// Ensure FakeInjector implements the interface.
var _ hostinput.Injector = (*FakeInjector)(nil)

// MoveRel records a relative move and shifts the fake cursor.
func (f *FakeInjector) MoveRel(dx, dy int) error {
	if f.Err != nil {
		return f.Err
	}
	f.CursorX += dx
	f.CursorY += dy
	f.Calls = append(f.Calls, Call{Name: "MoveRel", X: dx, Y: dy})
	return nil
}

// MoveAbs records an absolute move and places the fake cursor.
func (f *FakeInjector) MoveAbs(x, y int) error {
	if f.Err != nil {
		return f.Err
	}
	f.CursorX = x
	f.CursorY = y
	f.Calls = append(f.Calls, Call{Name: "MoveAbs", X: x, Y: y})
	return nil
}

// CursorPos returns the fake cursor position.
func (f *FakeInjector) CursorPos() (int, int, error) {
	if f.Err != nil {
		return 0, 0, f.Err
	}
	return f.CursorX, f.CursorY, nil
}

// KeyDown records a key press.
func (f *FakeInjector) KeyDown(name string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Calls = append(f.Calls, Call{Name: "KeyDown", Key: name})
	return nil
}

// KeyUp records a key release.
func (f *FakeInjector) KeyUp(name string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Calls = append(f.Calls, Call{Name: "KeyUp", Key: name})
	return nil
}

// Keys returns the Key fields of calls matching name, in order.
func (f *FakeInjector) Keys(name string) []string {
	var keys []string
	for _, c := range f.Calls {
		if c.Name == name {
			keys = append(keys, c.Key)
		}
	}
	return keys
}
