// Package joystick implements the touch joystick interaction engine.
package joystick

import "time"

// Direction restricts which axes the button may move along.
type Direction int

const (
	// DirectionBoth allows movement on both axes.
	DirectionBoth Direction = iota
	// DirectionHorizontal locks the button to the horizontal axis.
	DirectionHorizontal
	// DirectionVertical locks the button to the vertical axis.
	DirectionVertical
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionHorizontal:
		return "horizontal"
	case DirectionVertical:
		return "vertical"
	default:
		return "both"
	}
}

// ParseDirection maps a config string onto a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "both", "":
		return DirectionBoth, true
	case "horizontal":
		return DirectionHorizontal, true
	case "vertical":
		return DirectionVertical, true
	default:
		return DirectionBoth, false
	}
}

const (
	// DefaultButtonSizeRatio scales the button radius from the widget size.
	DefaultButtonSizeRatio = 0.25
	// DefaultBackgroundSizeRatio scales the border radius from the widget size.
	DefaultBackgroundSizeRatio = 0.75
	// DefaultBorderWidth is the border stroke width, which also pads the
	// circular hit zone around the border.
	DefaultBorderWidth = 10.0
	// DefaultRefreshInterval is the cadence of move notifications while pressed.
	DefaultRefreshInterval = 50 * time.Millisecond
	// DefaultLongPressDelay is twice the conventional 500ms long-press hold.
	DefaultLongPressDelay = 1000 * time.Millisecond
	// DefaultMoveTolerance is how many move events a pending long-press survives.
	DefaultMoveTolerance = 10
)

// Options configures a Widget at construction time. Zero-valued ratio,
// interval, and tolerance fields fall back to the defaults.
type Options struct {
	ButtonSizeRatio     float64
	BackgroundSizeRatio float64
	FixedCenter         bool
	AutoRecenter        bool
	StickToBorder       bool
	Enabled             bool
	Direction           Direction
	Deadzone            int
	ForwardLockDistance float64
	BorderWidth         float64
	RefreshInterval     time.Duration
	LongPressDelay      time.Duration
	MoveTolerance       int

	// OnMove receives the primary reading on press, release, and every
	// refresh tick while pressed. Nil disables delivery.
	OnMove func(angle, strength int)
	// OnForwardLock receives forward-lock transitions.
	OnForwardLock func(locked bool)
	// OnMultiLongPress fires at most once per qualifying two-finger hold.
	OnMultiLongPress func()
}

// DefaultOptions returns the stock widget configuration.
func DefaultOptions() Options {
	return Options{
		ButtonSizeRatio:     DefaultButtonSizeRatio,
		BackgroundSizeRatio: DefaultBackgroundSizeRatio,
		FixedCenter:         true,
		AutoRecenter:        true,
		Enabled:             true,
		Direction:           DirectionBoth,
		BorderWidth:         DefaultBorderWidth,
		RefreshInterval:     DefaultRefreshInterval,
		LongPressDelay:      DefaultLongPressDelay,
		MoveTolerance:       DefaultMoveTolerance,
	}
}

// validRatio reports whether a size ratio lies in (0,1].
func validRatio(r float64) bool {
	return r > 0 && r <= 1
}
