package profile

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/frudas24/touchstick/internal/drive"
	"github.com/frudas24/touchstick/internal/joystick"
)

// Profile is a named preset of widget and drive settings.
type Profile struct {
	Name                string  `yaml:"name" json:"name"`
	FixedCenter         bool    `yaml:"fixedCenter" json:"fixedCenter"`
	AutoRecenter        bool    `yaml:"autoRecenter" json:"autoRecenter"`
	StickToBorder       bool    `yaml:"stickToBorder" json:"stickToBorder"`
	Direction           string  `yaml:"direction" json:"direction"`
	Deadzone            int     `yaml:"deadzone" json:"deadzone"`
	ForwardLockDistance float64 `yaml:"forwardLockDistance" json:"forwardLockDistance"`
	RefreshIntervalMs   int     `yaml:"refreshIntervalMs" json:"refreshIntervalMs"`
	ButtonSizeRatio     float64 `yaml:"buttonSizeRatio" json:"buttonSizeRatio"`
	BackgroundSizeRatio float64 `yaml:"backgroundSizeRatio" json:"backgroundSizeRatio"`
	BorderWidth         float64 `yaml:"borderWidth" json:"borderWidth"`
	ButtonColor         string  `yaml:"buttonColor" json:"buttonColor"`
	BorderColor         string  `yaml:"borderColor" json:"borderColor"`
	BackgroundColor     string  `yaml:"backgroundColor" json:"backgroundColor"`
	LockColor           string  `yaml:"lockColor" json:"lockColor"`
	DriveMode           string  `yaml:"driveMode" json:"driveMode"`
	DriveGain           float64 `yaml:"driveGain" json:"driveGain"`
	KeyLayout           string  `yaml:"keyLayout" json:"keyLayout"`
}

// Default returns the built-in preset the widget starts with.
func Default() Profile {
	return Profile{
		Name:                "default",
		FixedCenter:         true,
		AutoRecenter:        true,
		Direction:           "both",
		RefreshIntervalMs:   50,
		ButtonSizeRatio:     joystick.DefaultButtonSizeRatio,
		BackgroundSizeRatio: joystick.DefaultBackgroundSizeRatio,
		BorderWidth:         joystick.DefaultBorderWidth,
		ButtonColor:         "#e8e8e8",
		BorderColor:         "#5a5a5a",
		BackgroundColor:     "#2a2a2a",
		LockColor:           "#cc3333",
		DriveMode:           string(drive.ModePointer),
		DriveGain:           drive.DefaultGain,
		KeyLayout:           string(drive.LayoutArrows),
	}
}

// UnmarshalYAML fills fields absent from the document with the built-in
// defaults. The name always comes from the document.
func (p *Profile) UnmarshalYAML(value *yaml.Node) error {
	type plain Profile
	out := plain(Default())
	out.Name = ""
	if err := value.Decode(&out); err != nil {
		return err
	}
	*p = Profile(out)
	return nil
}

// Validate checks the preset for out-of-range values.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if _, ok := joystick.ParseDirection(p.Direction); !ok {
		return fmt.Errorf("direction must be both, horizontal or vertical")
	}
	if p.Deadzone < 0 || p.Deadzone > 100 {
		return fmt.Errorf("deadzone must be 0-100")
	}
	if p.ForwardLockDistance < 0 {
		return fmt.Errorf("forwardLockDistance must not be negative")
	}
	if p.RefreshIntervalMs <= 0 {
		return fmt.Errorf("refreshIntervalMs must be positive")
	}
	if p.ButtonSizeRatio <= 0 || p.ButtonSizeRatio > 1 {
		return fmt.Errorf("buttonSizeRatio must be in (0,1]")
	}
	if p.BackgroundSizeRatio <= 0 || p.BackgroundSizeRatio > 1 {
		return fmt.Errorf("backgroundSizeRatio must be in (0,1]")
	}
	if p.BorderWidth <= 0 {
		return fmt.Errorf("borderWidth must be positive")
	}
	for _, c := range []string{p.ButtonColor, p.BorderColor, p.BackgroundColor, p.LockColor} {
		if !validHexColor(c) {
			return fmt.Errorf("color %q must be #rrggbb", c)
		}
	}
	if _, ok := drive.ParseMode(p.DriveMode); !ok {
		return fmt.Errorf("driveMode must be pointer or keys")
	}
	if p.DriveGain <= 0 {
		return fmt.Errorf("driveGain must be positive")
	}
	if _, ok := drive.ParseLayout(p.KeyLayout); !ok {
		return fmt.Errorf("keyLayout must be arrows or wasd")
	}
	return nil
}

// Options converts the preset into widget options.
func (p Profile) Options() joystick.Options {
	opts := joystick.DefaultOptions()
	opts.ButtonSizeRatio = p.ButtonSizeRatio
	opts.BackgroundSizeRatio = p.BackgroundSizeRatio
	opts.FixedCenter = p.FixedCenter
	opts.AutoRecenter = p.AutoRecenter
	opts.StickToBorder = p.StickToBorder
	if d, ok := joystick.ParseDirection(p.Direction); ok {
		opts.Direction = d
	}
	opts.Deadzone = p.Deadzone
	opts.ForwardLockDistance = p.ForwardLockDistance
	opts.BorderWidth = p.BorderWidth
	opts.RefreshInterval = time.Duration(p.RefreshIntervalMs) * time.Millisecond
	return opts
}

// Style converts the preset's colors into a render style.
func (p Profile) Style() joystick.Style {
	return joystick.Style{
		ButtonColor:     p.ButtonColor,
		BorderColor:     p.BorderColor,
		BackgroundColor: p.BackgroundColor,
		LockColor:       p.LockColor,
	}
}

// DriveConfig converts the preset into driver configuration.
func (p Profile) DriveConfig() drive.Config {
	mode, _ := drive.ParseMode(p.DriveMode)
	layout, _ := drive.ParseLayout(p.KeyLayout)
	return drive.Config{Mode: mode, Gain: p.DriveGain, Layout: layout}
}

// ApplyTo pushes the preset onto a live widget through its setters.
func (p Profile) ApplyTo(w *joystick.Widget) {
	w.SetButtonSizeRatio(p.ButtonSizeRatio)
	w.SetBackgroundSizeRatio(p.BackgroundSizeRatio)
	w.SetFixedCenter(p.FixedCenter)
	w.SetAutoRecenter(p.AutoRecenter)
	w.SetStickToBorder(p.StickToBorder)
	if d, ok := joystick.ParseDirection(p.Direction); ok {
		w.SetDirection(d)
	}
	w.SetDeadzone(p.Deadzone)
	w.SetForwardLockDistance(p.ForwardLockDistance)
	w.SetBorderWidth(p.BorderWidth)
	w.SetRefreshInterval(time.Duration(p.RefreshIntervalMs) * time.Millisecond)
}

// FromState captures the current widget, style, and driver settings as a
// preset.
func FromState(name string, w *joystick.Widget, d *drive.Driver, style joystick.Style) Profile {
	return Profile{
		Name:                name,
		FixedCenter:         w.FixedCenter(),
		AutoRecenter:        w.AutoRecenter(),
		StickToBorder:       w.StickToBorder(),
		Direction:           w.Direction().String(),
		Deadzone:            w.Deadzone(),
		ForwardLockDistance: w.ForwardLockDistance(),
		RefreshIntervalMs:   int(w.RefreshInterval() / time.Millisecond),
		ButtonSizeRatio:     w.ButtonSizeRatio(),
		BackgroundSizeRatio: w.BackgroundSizeRatio(),
		BorderWidth:         w.BorderWidth(),
		ButtonColor:         style.ButtonColor,
		BorderColor:         style.BorderColor,
		BackgroundColor:     style.BackgroundColor,
		LockColor:           style.LockColor,
		DriveMode:           string(d.Mode()),
		DriveGain:           d.Gain(),
		KeyLayout:           string(d.Layout()),
	}
}

// validHexColor accepts an empty color (layer skipped) or a #rrggbb string.
func validHexColor(s string) bool {
	if s == "" {
		return true
	}
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}
