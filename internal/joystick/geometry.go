package joystick

import "math"

// Point is a coordinate in widget space.
type Point struct {
	X float64
	Y float64
}

// Dist returns the euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// scaleToRadius moves p onto the circle of radius r around c, along the c->p
// ray. d is the precomputed distance between p and c and must be non-zero.
func scaleToRadius(p, c Point, r, d float64) Point {
	return Point{
		X: c.X + (p.X-c.X)*r/d,
		Y: c.Y + (p.Y-c.Y)*r/d,
	}
}

// clampToRadius returns p unchanged when it lies within radius r of c,
// otherwise its projection onto the circle.
func clampToRadius(p, c Point, r float64) Point {
	d := Dist(p, c)
	if d <= r || d == 0 {
		return p
	}
	return scaleToRadius(p, c, r, d)
}

// angleDeg converts the center->pos direction into protractor degrees:
// 0 east, counter-clockwise, range [0,360).
func angleDeg(center, pos Point) int {
	deg := math.Atan2(center.Y-pos.Y, pos.X-center.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return int(deg)
}

// strengthPct converts the center->pos displacement into a rounded percentage
// of the border radius, capped to [0,100].
func strengthPct(center, pos Point, borderRadius float64) int {
	if borderRadius <= 0 {
		return 0
	}
	s := int(math.Round(100 * Dist(center, pos) / borderRadius))
	if s > 100 {
		return 100
	}
	if s < 0 {
		return 0
	}
	return s
}
