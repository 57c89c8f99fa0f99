// Package joystick implements the touch joystick interaction engine.
package joystick

// Style holds the draw colors for a rendered widget. Colors are #RRGGBB hex
// strings; an empty color skips that layer.
type Style struct {
	ButtonColor     string `json:"buttonColor"`
	BorderColor     string `json:"borderColor"`
	BackgroundColor string `json:"backgroundColor"`
	LockColor       string `json:"lockColor"`
}

// DefaultStyle returns the stock monochrome look with a transparent
// background.
func DefaultStyle() Style {
	return Style{
		ButtonColor: "#000000",
		BorderColor: "#000000",
		LockColor:   "#cc3333",
	}
}

// Cmd is one circle draw command for a host renderer.
type Cmd struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	R           float64 `json:"r"`
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// Render converts the current state into an ordered draw-command list:
// background disc, border ring, lock-zone marker when configured, button.
func (w *Widget) Render(style Style) []Cmd {
	cmds := make([]Cmd, 0, 4)
	if style.BackgroundColor != "" {
		cmds = append(cmds, Cmd{
			X:    w.center.X,
			Y:    w.center.Y,
			R:    w.borderRadius,
			Fill: style.BackgroundColor,
		})
	}
	cmds = append(cmds, Cmd{
		X:           w.center.X,
		Y:           w.center.Y,
		R:           w.borderRadius,
		Stroke:      style.BorderColor,
		StrokeWidth: w.opts.BorderWidth,
	})
	if w.opts.ForwardLockDistance != 0 {
		anchor := w.lockAnchor()
		lock := Cmd{
			X:           anchor.X,
			Y:           anchor.Y,
			R:           w.buttonRadius,
			Stroke:      style.LockColor,
			StrokeWidth: w.opts.BorderWidth,
		}
		if w.forwardLocked {
			lock.Fill = style.LockColor
		}
		cmds = append(cmds, lock)
	}
	cmds = append(cmds, Cmd{
		X:    w.pos.X,
		Y:    w.pos.Y,
		R:    w.buttonRadius,
		Fill: style.ButtonColor,
	})
	return cmds
}
