// Package drive converts joystick readings into host pointer and key input.
package drive

import (
	"math"

	"github.com/frudas24/touchstick/internal/hostinput"
	"github.com/frudas24/touchstick/internal/monitor"
)

// Mode selects how readings are converted.
type Mode string

// Conversion modes.
const (
	ModePointer Mode = "pointer"
	ModeKeys    Mode = "keys"
)

// ParseMode maps a wire string onto a Mode, the empty string meaning pointer.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", string(ModePointer):
		return ModePointer, true
	case string(ModeKeys):
		return ModeKeys, true
	}
	return "", false
}

// Defaults for a zero Config.
const (
	DefaultGain      = 14.0
	DefaultThreshold = 30
)

// Config sets up a Driver. Zero fields fall back to defaults.
type Config struct {
	Mode      Mode
	Gain      float64
	Layout    Layout
	Threshold int
}

// Driver converts (angle, strength) readings into injector calls. It is not
// safe for concurrent use; the app drives it from the event loop.
type Driver struct {
	inj       hostinput.Injector
	mode      Mode
	gain      float64
	layout    Layout
	threshold int

	cage    monitor.Monitor
	hasCage bool

	carryX float64
	carryY float64

	held map[string]bool
}

// New returns a driver writing to inj.
func New(inj hostinput.Injector, cfg Config) *Driver {
	if cfg.Mode == "" {
		cfg.Mode = ModePointer
	}
	if cfg.Gain <= 0 {
		cfg.Gain = DefaultGain
	}
	if cfg.Layout == "" {
		cfg.Layout = LayoutArrows
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	return &Driver{
		inj:       inj,
		mode:      cfg.Mode,
		gain:      cfg.Gain,
		layout:    cfg.Layout,
		threshold: cfg.Threshold,
		held:      make(map[string]bool),
	}
}

// Mode returns the active conversion mode.
func (d *Driver) Mode() Mode { return d.mode }

// Gain returns the pointer speed in pixels per reading at full strength.
func (d *Driver) Gain() float64 { return d.gain }

// Layout returns the key layout used in keys mode.
func (d *Driver) Layout() Layout { return d.layout }

// SetMode switches the conversion mode, releasing held keys and pending
// movement.
func (d *Driver) SetMode(mode Mode) error {
	if mode == d.mode {
		return nil
	}
	err := d.holdOnly(nil)
	d.mode = mode
	d.carryX = 0
	d.carryY = 0
	return err
}

// SetGain updates the pointer speed. Non-positive values are ignored.
func (d *Driver) SetGain(gain float64) {
	if gain <= 0 {
		return
	}
	d.gain = gain
}

// SetLayout switches the key layout, releasing held keys first.
func (d *Driver) SetLayout(layout Layout) error {
	if layout == d.layout {
		return nil
	}
	err := d.holdOnly(nil)
	d.layout = layout
	return err
}

// SetCage confines the cursor to the given monitor in pointer mode.
func (d *Driver) SetCage(m monitor.Monitor) {
	d.cage = m
	d.hasCage = true
}

// ClearCage removes the cursor confinement.
func (d *Driver) ClearCage() {
	d.cage = monitor.Monitor{}
	d.hasCage = false
}

// Apply converts one joystick reading into host input.
func (d *Driver) Apply(angle, strength int) error {
	if d.mode == ModeKeys {
		return d.applyKeys(angle, strength)
	}
	return d.applyPointer(angle, strength)
}

// Release stops all output: pending movement is dropped and held keys come
// back up.
func (d *Driver) Release() error {
	d.carryX = 0
	d.carryY = 0
	return d.holdOnly(nil)
}

// applyPointer integrates the reading into a cursor velocity, carrying the
// fractional remainder between readings.
func (d *Driver) applyPointer(angle, strength int) error {
	if strength <= 0 {
		d.carryX = 0
		d.carryY = 0
		return nil
	}
	rad := float64(angle) * math.Pi / 180
	speed := float64(strength) / 100 * d.gain
	d.carryX += math.Cos(rad) * speed
	d.carryY -= math.Sin(rad) * speed

	dx, dy := d.extractCarry()
	if dx == 0 && dy == 0 {
		return nil
	}
	if err := d.inj.MoveRel(dx, dy); err != nil {
		return err
	}
	return d.applyCage()
}

// extractCarry returns the accumulated integer deltas, keeping the fractional
// remainder for the next reading.
func (d *Driver) extractCarry() (int, int) {
	dx, dy := int(d.carryX), int(d.carryY)
	d.carryX -= float64(dx)
	d.carryY -= float64(dy)
	return dx, dy
}

// applyCage pulls the cursor back inside the cage monitor. The carry on a
// clamped axis is dropped so pressure against the edge does not accumulate.
func (d *Driver) applyCage() error {
	if !d.hasCage {
		return nil
	}
	x, y, err := d.inj.CursorPos()
	if err != nil {
		return err
	}
	cx, cy := d.cage.ClampPoint(x, y)
	if cx == x && cy == y {
		return nil
	}
	if cx != x {
		d.carryX = 0
	}
	if cy != y {
		d.carryY = 0
	}
	return d.inj.MoveAbs(cx, cy)
}
