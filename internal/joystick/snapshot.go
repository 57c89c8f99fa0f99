package joystick

// Snapshot is a read-only view of the widget state for APIs and clients.
type Snapshot struct {
	Pressed             bool    `json:"pressed"`
	Angle               int     `json:"angle"`
	Strength            int     `json:"strength"`
	NormalizedX         int     `json:"normalizedX"`
	NormalizedY         int     `json:"normalizedY"`
	ForwardLocked       bool    `json:"forwardLocked"`
	Enabled             bool    `json:"enabled"`
	FixedCenter         bool    `json:"fixedCenter"`
	AutoRecenter        bool    `json:"autoRecenter"`
	StickToBorder       bool    `json:"stickToBorder"`
	Direction           string  `json:"direction"`
	Deadzone            int     `json:"deadzone"`
	ForwardLockDistance float64 `json:"forwardLockDistance"`
	RefreshIntervalMs   int     `json:"refreshIntervalMs"`
	ButtonSizeRatio     float64 `json:"buttonRatio"`
	BackgroundSizeRatio float64 `json:"backgroundRatio"`
	BorderWidth         float64 `json:"borderWidth"`
	Width               float64 `json:"width"`
	Height              float64 `json:"height"`
}

// Snapshot captures the current widget state. Must run on the widget's loop
// like every other method.
func (w *Widget) Snapshot() Snapshot {
	return Snapshot{
		Pressed:             w.Pressed(),
		Angle:               w.Angle(),
		Strength:            w.Strength(),
		NormalizedX:         w.NormalizedX(),
		NormalizedY:         w.NormalizedY(),
		ForwardLocked:       w.forwardLocked,
		Enabled:             w.opts.Enabled,
		FixedCenter:         w.opts.FixedCenter,
		AutoRecenter:        w.opts.AutoRecenter,
		StickToBorder:       w.opts.StickToBorder,
		Direction:           w.opts.Direction.String(),
		Deadzone:            w.opts.Deadzone,
		ForwardLockDistance: w.opts.ForwardLockDistance,
		RefreshIntervalMs:   int(w.opts.RefreshInterval.Milliseconds()),
		ButtonSizeRatio:     w.opts.ButtonSizeRatio,
		BackgroundSizeRatio: w.opts.BackgroundSizeRatio,
		BorderWidth:         w.opts.BorderWidth,
		Width:               w.width,
		Height:              w.height,
	}
}
