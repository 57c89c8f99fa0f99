package preview

import (
	"image/color"
	"testing"

	"github.com/frudas24/touchstick/internal/joystick"
	"github.com/frudas24/touchstick/internal/testutil"
)

// TestParseHexColor verifies the accepted color format.
func TestParseHexColor(t *testing.T) {
	c, ok := parseHexColor("#cc3333")
	if !ok || c != (color.RGBA{R: 0xcc, G: 0x33, B: 0x33, A: 0xff}) {
		t.Fatalf("unexpected color: %+v, %v", c, ok)
	}
	for _, bad := range []string{"", "cc3333", "#ccc", "#zzzzzz", "#cc33330"} {
		if _, ok := parseHexColor(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

// TestCanvas_RenderFillsCircle verifies a fill command paints its disc and
// leaves the backdrop elsewhere.
func TestCanvas_RenderFillsCircle(t *testing.T) {
	canvas := NewCanvas(100)
	cmds := []joystick.Cmd{{X: 50, Y: 50, R: 20, Fill: "#00ff00"}}
	img := canvas.Render(cmds, 100, 100)

	if got := img.RGBAAt(50, 50); got != (color.RGBA{G: 0xff, A: 0xff}) {
		t.Fatalf("expected filled center, got %+v", got)
	}
	if got := img.RGBAAt(5, 5); got != canvasBackground {
		t.Fatalf("expected backdrop at corner, got %+v", got)
	}
}

// TestCanvas_RenderStrokeRing verifies a stroke command paints only a ring.
func TestCanvas_RenderStrokeRing(t *testing.T) {
	canvas := NewCanvas(100)
	cmds := []joystick.Cmd{{X: 50, Y: 50, R: 30, Stroke: "#ff0000", StrokeWidth: 4}}
	img := canvas.Render(cmds, 100, 100)

	if got := img.RGBAAt(80, 50); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Fatalf("expected ring pixel, got %+v", got)
	}
	if got := img.RGBAAt(50, 50); got != canvasBackground {
		t.Fatalf("expected hollow center, got %+v", got)
	}
}

// TestCanvas_ScalesAndCenters verifies widget space is fitted onto the
// canvas with aspect preserved.
func TestCanvas_ScalesAndCenters(t *testing.T) {
	canvas := NewCanvas(240)
	cmds := []joystick.Cmd{{X: 200, Y: 100, R: 50, Fill: "#0000ff"}}
	img := canvas.Render(cmds, 400, 200)

	if got := img.RGBAAt(120, 120); got != (color.RGBA{B: 0xff, A: 0xff}) {
		t.Fatalf("expected scaled center painted, got %+v", got)
	}
	if got := img.RGBAAt(120, 30); got != canvasBackground {
		t.Fatalf("expected letterboxed area untouched, got %+v", got)
	}
}

// TestCanvas_DegenerateWidget verifies an unsized widget yields a blank
// frame instead of dividing by zero.
func TestCanvas_DegenerateWidget(t *testing.T) {
	canvas := NewCanvas(60)
	img := canvas.Render([]joystick.Cmd{{X: 0, Y: 0, R: 10, Fill: "#ffffff"}}, 0, 0)
	if got := img.RGBAAt(30, 30); got != canvasBackground {
		t.Fatalf("expected blank frame, got %+v", got)
	}
}

// TestPublisher_FramePublishes verifies the full render-encode-publish path.
func TestPublisher_FramePublishes(t *testing.T) {
	w := joystick.New(&testutil.FakeScheduler{}, joystick.DefaultOptions())
	w.Resize(200, 200)

	pub := NewPublisher(120, 60, 0)
	pub.Frame(w, joystick.Style{ButtonColor: "#e8e8e8", BorderColor: "#5a5a5a"})

	ch := pub.Stream().subscribe()
	defer pub.Stream().unsubscribe(ch)
	select {
	case jpg := <-ch:
		if len(jpg) < 2 || jpg[0] != 0xff || jpg[1] != 0xd8 {
			t.Fatalf("expected jpeg frame, got %d bytes", len(jpg))
		}
	default:
		t.Fatalf("expected a published frame")
	}
}
