package profile

import (
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/frudas24/touchstick/internal/drive"
	"github.com/frudas24/touchstick/internal/joystick"
	"github.com/frudas24/touchstick/internal/testutil"
)

// TestDefault_IsValid verifies the built-in preset passes validation.
func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default profile invalid: %v", err)
	}
}

// TestUnmarshalYAML_FillsDefaults verifies absent fields take the built-in
// defaults while present fields win.
func TestUnmarshalYAML_FillsDefaults(t *testing.T) {
	var p Profile
	doc := []byte("name: slow\ndeadzone: 40\nautoRecenter: false\n")
	if err := yaml.Unmarshal(doc, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Name != "slow" || p.Deadzone != 40 || p.AutoRecenter {
		t.Fatalf("expected document fields to win, got %+v", p)
	}
	if !p.FixedCenter || p.RefreshIntervalMs != 50 || p.DriveGain != drive.DefaultGain {
		t.Fatalf("expected defaults for absent fields, got %+v", p)
	}
}

// TestValidate_RejectsOutOfRange verifies each field range check.
func TestValidate_RejectsOutOfRange(t *testing.T) {
	cases := []struct {
		label  string
		mutate func(*Profile)
	}{
		{"empty name", func(p *Profile) { p.Name = "" }},
		{"bad direction", func(p *Profile) { p.Direction = "diagonal" }},
		{"deadzone too high", func(p *Profile) { p.Deadzone = 101 }},
		{"negative lock distance", func(p *Profile) { p.ForwardLockDistance = -1 }},
		{"zero refresh", func(p *Profile) { p.RefreshIntervalMs = 0 }},
		{"button ratio over 1", func(p *Profile) { p.ButtonSizeRatio = 1.5 }},
		{"zero background ratio", func(p *Profile) { p.BackgroundSizeRatio = 0 }},
		{"zero border width", func(p *Profile) { p.BorderWidth = 0 }},
		{"named color", func(p *Profile) { p.ButtonColor = "red" }},
		{"short hex color", func(p *Profile) { p.LockColor = "#ccc" }},
		{"bad drive mode", func(p *Profile) { p.DriveMode = "warp" }},
		{"zero gain", func(p *Profile) { p.DriveGain = 0 }},
		{"bad layout", func(p *Profile) { p.KeyLayout = "dvorak" }},
	}
	for _, tc := range cases {
		p := Default()
		tc.mutate(&p)
		if err := p.Validate(); err == nil {
			t.Fatalf("expected %s to be rejected, got %+v", tc.label, p)
		}
	}
}

// TestOptions_Conversion verifies the preset maps onto widget options.
func TestOptions_Conversion(t *testing.T) {
	p := Default()
	p.Direction = "horizontal"
	p.Deadzone = 25
	p.RefreshIntervalMs = 100
	p.StickToBorder = true
	p.BorderWidth = 6

	opts := p.Options()
	if opts.Direction != joystick.DirectionHorizontal {
		t.Fatalf("expected horizontal direction, got %v", opts.Direction)
	}
	if opts.Deadzone != 25 || !opts.StickToBorder || opts.BorderWidth != 6 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.RefreshInterval != 100*time.Millisecond {
		t.Fatalf("expected 100ms refresh, got %v", opts.RefreshInterval)
	}
}

// TestApplyTo_PushesSettings verifies applying a preset reconfigures a live
// widget.
func TestApplyTo_PushesSettings(t *testing.T) {
	sched := &testutil.FakeScheduler{}
	w := joystick.New(sched, joystick.DefaultOptions())
	w.Resize(200, 200)

	p := Default()
	p.ButtonSizeRatio = 0.3
	p.BackgroundSizeRatio = 0.8
	p.Direction = "vertical"
	p.Deadzone = 15
	p.RefreshIntervalMs = 100
	p.ApplyTo(w)

	if w.BorderRadius() != 80 || w.ButtonRadius() != 30 {
		t.Fatalf("expected radii 80/30, got %v/%v", w.BorderRadius(), w.ButtonRadius())
	}
	if w.Direction() != joystick.DirectionVertical || w.Deadzone() != 15 {
		t.Fatalf("unexpected widget config: %v/%d", w.Direction(), w.Deadzone())
	}
	if w.RefreshInterval() != 100*time.Millisecond {
		t.Fatalf("expected 100ms refresh, got %v", w.RefreshInterval())
	}
}

// TestFromState_RoundTrips verifies capturing widget and driver settings
// reproduces the preset they were built from.
func TestFromState_RoundTrips(t *testing.T) {
	p := Default()
	p.Name = "custom"
	p.Direction = "horizontal"
	p.Deadzone = 20
	p.StickToBorder = true
	p.BorderWidth = 4
	p.ButtonColor = "#112233"
	p.DriveMode = "keys"
	p.KeyLayout = "wasd"
	p.DriveGain = 20

	sched := &testutil.FakeScheduler{}
	w := joystick.New(sched, p.Options())
	d := drive.New(&testutil.FakeInjector{}, p.DriveConfig())

	got := FromState("custom", w, d, p.Style())
	if got != p {
		t.Fatalf("expected %+v, got %+v", p, got)
	}
}
