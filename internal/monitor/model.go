// Package monitor describes display geometry and enumeration.
package monitor

// Monitor describes a display and its bounds in virtual-screen coordinates.
type Monitor struct {
	Index   int  `json:"index"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
	W       int  `json:"w"`
	H       int  `json:"h"`
	Primary bool `json:"primary"`
}

// ByIndex returns the monitor matching the 1-based index.
func ByIndex(list []Monitor, idx int) (Monitor, bool) {
	for _, m := range list {
		if m.Index == idx {
			return m, true
		}
	}
	return Monitor{}, false
}

// Pick selects the cage monitor: the preferred 1-based index when set and
// present, otherwise the primary display, otherwise the first.
func Pick(list []Monitor, preferred int) (Monitor, bool) {
	if preferred > 0 {
		if m, ok := ByIndex(list, preferred); ok {
			return m, true
		}
	}
	for _, m := range list {
		if m.Primary {
			return m, true
		}
	}
	if len(list) > 0 {
		return list[0], true
	}
	return Monitor{}, false
}

// ClampPoint confines a point to the monitor bounds.
func (m Monitor) ClampPoint(x, y int) (int, int) {
	if m.W <= 0 || m.H <= 0 {
		return m.X, m.Y
	}
	if x < m.X {
		x = m.X
	}
	if x > m.X+m.W-1 {
		x = m.X + m.W - 1
	}
	if y < m.Y {
		y = m.Y
	}
	if y > m.Y+m.H-1 {
		y = m.Y + m.H - 1
	}
	return x, y
}

// Center returns the monitor midpoint.
func (m Monitor) Center() (int, int) {
	return m.X + m.W/2, m.Y + m.H/2
}
