package drive

import (
	"testing"

	"github.com/frudas24/touchstick/internal/monitor"
	"github.com/frudas24/touchstick/internal/testutil"
)

// TestApply_PointerMovesCursor verifies full-strength readings translate into
// relative moves along the reading direction.
func TestApply_PointerMovesCursor(t *testing.T) {
	fake := &testutil.FakeInjector{}
	d := New(fake, Config{Gain: 10})

	if err := d.Apply(0, 100); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := d.Apply(90, 100); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(fake.Calls) != 2 {
		t.Fatalf("expected two moves, got %#v", fake.Calls)
	}
	if fake.Calls[0] != (testutil.Call{Name: "MoveRel", X: 10, Y: 0}) {
		t.Fatalf("expected east move, got %#v", fake.Calls[0])
	}
	if fake.Calls[1] != (testutil.Call{Name: "MoveRel", X: 0, Y: -10}) {
		t.Fatalf("expected north move, got %#v", fake.Calls[1])
	}
}

// TestApply_PointerCarriesFraction verifies sub-pixel speeds accumulate
// instead of being lost.
func TestApply_PointerCarriesFraction(t *testing.T) {
	fake := &testutil.FakeInjector{}
	d := New(fake, Config{Gain: 1})

	if err := d.Apply(0, 50); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(fake.Calls) != 0 {
		t.Fatalf("expected no move below one pixel, got %#v", fake.Calls)
	}
	if err := d.Apply(0, 50); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(fake.Calls) != 1 || fake.Calls[0] != (testutil.Call{Name: "MoveRel", X: 1, Y: 0}) {
		t.Fatalf("expected accumulated one-pixel move, got %#v", fake.Calls)
	}
}

// TestApply_PointerZeroStrengthDropsCarry verifies a centered reading resets
// the fractional remainder.
func TestApply_PointerZeroStrengthDropsCarry(t *testing.T) {
	fake := &testutil.FakeInjector{}
	d := New(fake, Config{Gain: 1})

	_ = d.Apply(0, 50)
	_ = d.Apply(0, 0)
	_ = d.Apply(0, 50)
	if len(fake.Calls) != 0 {
		t.Fatalf("expected carry dropped at zero strength, got %#v", fake.Calls)
	}
}

// TestApply_CagePullsCursorBack verifies the cursor is clamped back into the
// cage monitor after a move past its edge.
func TestApply_CagePullsCursorBack(t *testing.T) {
	fake := &testutil.FakeInjector{CursorX: 95, CursorY: 50}
	d := New(fake, Config{Gain: 10})
	d.SetCage(monitor.Monitor{X: 0, Y: 0, W: 100, H: 100})

	if err := d.Apply(0, 100); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(fake.Calls) != 2 {
		t.Fatalf("expected move then clamp, got %#v", fake.Calls)
	}
	if fake.Calls[1] != (testutil.Call{Name: "MoveAbs", X: 99, Y: 50}) {
		t.Fatalf("expected clamp to the cage edge, got %#v", fake.Calls[1])
	}
	if fake.CursorX != 99 || fake.CursorY != 50 {
		t.Fatalf("expected cursor at (99,50), got (%d,%d)", fake.CursorX, fake.CursorY)
	}
}

// TestApply_KeysPressAndRelease verifies direction changes swap the held key.
func TestApply_KeysPressAndRelease(t *testing.T) {
	fake := &testutil.FakeInjector{}
	d := New(fake, Config{Mode: ModeKeys})

	_ = d.Apply(0, 100)
	_ = d.Apply(90, 100)
	_ = d.Apply(0, 10)

	downs := fake.Keys("KeyDown")
	ups := fake.Keys("KeyUp")
	if len(downs) != 2 || downs[0] != "right" || downs[1] != "up" {
		t.Fatalf("expected right then up pressed, got %#v", downs)
	}
	if len(ups) != 2 || ups[0] != "right" || ups[1] != "up" {
		t.Fatalf("expected right then up released, got %#v", ups)
	}
}

// TestApply_KeysDiagonalChord verifies diagonal sectors hold two keys and
// repeated readings do not re-press them.
func TestApply_KeysDiagonalChord(t *testing.T) {
	fake := &testutil.FakeInjector{}
	d := New(fake, Config{Mode: ModeKeys})

	_ = d.Apply(45, 100)
	_ = d.Apply(45, 100)

	downs := fake.Keys("KeyDown")
	if len(downs) != 2 || downs[0] != "right" || downs[1] != "up" {
		t.Fatalf("expected right+up chord once, got %#v", downs)
	}
	if len(fake.Keys("KeyUp")) != 0 {
		t.Fatalf("expected no releases, got %#v", fake.Calls)
	}
}

// TestApply_KeysThresholdBoundary verifies the press threshold is inclusive.
func TestApply_KeysThresholdBoundary(t *testing.T) {
	fake := &testutil.FakeInjector{}
	d := New(fake, Config{Mode: ModeKeys, Threshold: 30})

	_ = d.Apply(0, 29)
	if len(fake.Calls) != 0 {
		t.Fatalf("expected no press below threshold, got %#v", fake.Calls)
	}
	_ = d.Apply(0, 30)
	if got := fake.Keys("KeyDown"); len(got) != 1 || got[0] != "right" {
		t.Fatalf("expected press at threshold, got %#v", fake.Calls)
	}
}

// TestApply_KeysWASDLayout verifies the WASD layout substitution.
func TestApply_KeysWASDLayout(t *testing.T) {
	fake := &testutil.FakeInjector{}
	d := New(fake, Config{Mode: ModeKeys, Layout: LayoutWASD})

	_ = d.Apply(180, 100)
	if got := fake.Keys("KeyDown"); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected a pressed, got %#v", fake.Calls)
	}
}

// TestRelease_LiftsHeldKeys verifies Release brings every held key back up.
func TestRelease_LiftsHeldKeys(t *testing.T) {
	fake := &testutil.FakeInjector{}
	d := New(fake, Config{Mode: ModeKeys})

	_ = d.Apply(45, 100)
	if err := d.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	ups := fake.Keys("KeyUp")
	if len(ups) != 2 || ups[0] != "up" || ups[1] != "right" {
		t.Fatalf("expected up and right released, got %#v", ups)
	}
}

// TestSetMode_ReleasesHeldKeys verifies a mode switch does not leave keys
// stuck down.
func TestSetMode_ReleasesHeldKeys(t *testing.T) {
	fake := &testutil.FakeInjector{}
	d := New(fake, Config{Mode: ModeKeys})

	_ = d.Apply(90, 100)
	if err := d.SetMode(ModePointer); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	if got := fake.Keys("KeyUp"); len(got) != 1 || got[0] != "up" {
		t.Fatalf("expected up released on mode switch, got %#v", fake.Calls)
	}
	if d.Mode() != ModePointer {
		t.Fatalf("expected pointer mode, got %v", d.Mode())
	}
}

// TestParseMode_Defaults verifies the wire strings and the empty default.
func TestParseMode_Defaults(t *testing.T) {
	if m, ok := ParseMode(""); !ok || m != ModePointer {
		t.Fatalf("expected empty string to mean pointer, got %v %v", m, ok)
	}
	if m, ok := ParseMode("keys"); !ok || m != ModeKeys {
		t.Fatalf("expected keys, got %v %v", m, ok)
	}
	if _, ok := ParseMode("warp"); ok {
		t.Fatalf("expected unknown mode rejected")
	}
}

// TestParseLayout_Defaults verifies the layout wire strings.
func TestParseLayout_Defaults(t *testing.T) {
	if l, ok := ParseLayout(""); !ok || l != LayoutArrows {
		t.Fatalf("expected empty string to mean arrows, got %v %v", l, ok)
	}
	if l, ok := ParseLayout("wasd"); !ok || l != LayoutWASD {
		t.Fatalf("expected wasd, got %v %v", l, ok)
	}
	if _, ok := ParseLayout("dvorak"); ok {
		t.Fatalf("expected unknown layout rejected")
	}
}
