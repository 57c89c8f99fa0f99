// Package drive converts joystick readings into host pointer and key input.
package drive

// Layout names the key set used in keys mode.
type Layout string

// Key layouts.
const (
	LayoutArrows Layout = "arrows"
	LayoutWASD   Layout = "wasd"
)

// ParseLayout maps a wire string onto a Layout, the empty string meaning
// arrows.
func ParseLayout(s string) (Layout, bool) {
	switch s {
	case "", string(LayoutArrows):
		return LayoutArrows, true
	case string(LayoutWASD):
		return LayoutWASD, true
	}
	return "", false
}

// sectorKeys maps each 45-degree sector, starting east and going
// counter-clockwise, to its directional keys.
var sectorKeys = [8][]string{
	{"right"},
	{"right", "up"},
	{"up"},
	{"up", "left"},
	{"left"},
	{"left", "down"},
	{"down"},
	{"down", "right"},
}

// wasdKeys translates directional keys into the WASD layout.
var wasdKeys = map[string]string{
	"up":    "w",
	"left":  "a",
	"down":  "s",
	"right": "d",
}

// keyOrder fixes the release order across both layouts.
var keyOrder = []string{"up", "down", "left", "right", "w", "a", "s", "d"}

// sectorOf buckets an angle in [0,360) into one of the 8 sectors.
func sectorOf(angle int) int {
	return ((angle + 22) / 45) % 8
}

// applyKeys holds the key chord for the reading's sector, or none below the
// strength threshold.
func (d *Driver) applyKeys(angle, strength int) error {
	var want []string
	if strength >= d.threshold {
		want = d.layoutKeys(sectorOf(angle))
	}
	return d.holdOnly(want)
}

// layoutKeys translates a sector's directional keys into the active layout.
func (d *Driver) layoutKeys(sector int) []string {
	keys := sectorKeys[sector]
	if d.layout != LayoutWASD {
		return keys
	}
	mapped := make([]string, len(keys))
	for i, k := range keys {
		mapped[i] = wasdKeys[k]
	}
	return mapped
}

// holdOnly releases held keys missing from want and presses the rest of want.
func (d *Driver) holdOnly(want []string) error {
	wanted := make(map[string]bool, len(want))
	for _, k := range want {
		wanted[k] = true
	}
	for _, k := range keyOrder {
		if d.held[k] && !wanted[k] {
			if err := d.inj.KeyUp(k); err != nil {
				return err
			}
			delete(d.held, k)
		}
	}
	for _, k := range want {
		if !d.held[k] {
			if err := d.inj.KeyDown(k); err != nil {
				return err
			}
			d.held[k] = true
		}
	}
	return nil
}
