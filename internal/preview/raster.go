// Package preview streams a server-rendered view of the widget as MJPEG.
package preview

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"time"

	"github.com/frudas24/touchstick/internal/joystick"
)

// canvasBackground is the backdrop behind the widget layers.
var canvasBackground = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}

// Canvas rasterizes widget draw commands at a fixed square output size.
type Canvas struct {
	size int
}

// NewCanvas creates a canvas with the given pixel size per side.
func NewCanvas(size int) *Canvas {
	return &Canvas{size: size}
}

// Render scales the widget-space command list onto the canvas and returns
// the frame. w and h are the widget dimensions the commands were laid out
// for; the widget is fitted and centered.
func (c *Canvas) Render(cmds []joystick.Cmd, w, h float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.size, c.size))
	fillRect(img, canvasBackground)
	if w <= 0 || h <= 0 {
		return img
	}

	scale := float64(c.size) / math.Max(w, h)
	ox := (float64(c.size) - w*scale) / 2
	oy := (float64(c.size) - h*scale) / 2

	for _, cmd := range cmds {
		cx := cmd.X*scale + ox
		cy := cmd.Y*scale + oy
		r := cmd.R * scale
		if fill, ok := parseHexColor(cmd.Fill); ok {
			fillCircle(img, cx, cy, r, fill)
		}
		if stroke, ok := parseHexColor(cmd.Stroke); ok {
			strokeCircle(img, cx, cy, r, cmd.StrokeWidth*scale, stroke)
		}
	}
	return img
}

// Publisher renders widget frames and feeds the MJPEG stream.
type Publisher struct {
	stream  *Stream
	canvas  *Canvas
	quality int
}

// NewPublisher creates a preview publisher with the given frame size,
// JPEG quality, and minimum publish interval.
func NewPublisher(size, quality int, minInterval time.Duration) *Publisher {
	return &Publisher{
		stream:  NewStream(minInterval),
		canvas:  NewCanvas(size),
		quality: quality,
	}
}

// Stream exposes the underlying MJPEG stream for the HTTP handler.
func (p *Publisher) Stream() *Stream {
	return p.stream
}

// Frame renders the widget's draw commands in the given style and publishes
// the encoded frame. Must run on the loop that owns the widget.
func (p *Publisher) Frame(w *joystick.Widget, style joystick.Style) {
	snap := w.Snapshot()
	img := p.canvas.Render(w.Render(style), snap.Width, snap.Height)
	p.stream.Publish(EncodeJPEG(img, p.quality))
}

// parseHexColor parses a #rrggbb color string.
func parseHexColor(s string) (color.RGBA, bool) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, true
}

// fillRect floods the whole image with one color.
func fillRect(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// fillCircle draws a filled disc clipped to the image bounds.
func fillCircle(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	if r <= 0 {
		return
	}
	forCircleBox(img, cx, cy, r, func(x, y int, d float64) {
		if d <= r {
			img.SetRGBA(x, y, c)
		}
	})
}

// strokeCircle draws a ring of the given stroke width around radius r.
func strokeCircle(img *image.RGBA, cx, cy, r, width float64, c color.RGBA) {
	if r <= 0 {
		return
	}
	if width <= 0 {
		width = 1
	}
	inner := r - width/2
	outer := r + width/2
	forCircleBox(img, cx, cy, outer, func(x, y int, d float64) {
		if d >= inner && d <= outer {
			img.SetRGBA(x, y, c)
		}
	})
}

// forCircleBox visits every pixel in the clipped bounding box of a circle,
// passing the distance from the center.
func forCircleBox(img *image.RGBA, cx, cy, r float64, visit func(x, y int, d float64)) {
	b := img.Bounds()
	minX := clampInt(int(math.Floor(cx-r)), b.Min.X, b.Max.X-1)
	maxX := clampInt(int(math.Ceil(cx+r)), b.Min.X, b.Max.X-1)
	minY := clampInt(int(math.Floor(cy-r)), b.Min.Y, b.Max.Y-1)
	maxY := clampInt(int(math.Ceil(cy+r)), b.Min.Y, b.Max.Y-1)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			visit(x, y, math.Sqrt(dx*dx+dy*dy))
		}
	}
}

// clampInt confines v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
