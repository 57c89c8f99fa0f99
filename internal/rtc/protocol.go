// Package rtc provides WebRTC signaling and the joystick data channel.
package rtc

import "github.com/pion/webrtc/v3"

// Message is a websocket signaling payload.
type Message struct {
	T         string                   `json:"t"`
	SDP       string                   `json:"sdp,omitempty"`
	Candidate *webrtc.ICECandidateInit `json:"candidate,omitempty"`
}

// ViewerPolicy controls how additional signaling clients are handled.
type ViewerPolicy int

const (
	// ViewerReject rejects new connections when one is active.
	ViewerReject ViewerPolicy = iota
	// ViewerReplace closes the active connection when a new one arrives.
	ViewerReplace
)

// ParseViewerPolicy maps a config string onto a ViewerPolicy.
func ParseViewerPolicy(s string) ViewerPolicy {
	if s == "replace" {
		return ViewerReplace
	}
	return ViewerReject
}
