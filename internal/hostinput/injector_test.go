package hostinput

import "testing"

// TestValidKey_AcceptsLayoutKeys verifies both key layouts resolve.
func TestValidKey_AcceptsLayoutKeys(t *testing.T) {
	for _, name := range []string{"up", "down", "left", "right", "w", "a", "s", "d"} {
		if !ValidKey(name) {
			t.Fatalf("expected %q to be a valid key", name)
		}
	}
}

// TestValidKey_RejectsUnknown verifies unmapped identifiers are rejected.
func TestValidKey_RejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "UP", "q", "ctrl+c"} {
		if ValidKey(name) {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}
