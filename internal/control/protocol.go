// Package control handles the joystick control protocol and its
// websocket transport.
package control

import (
	"encoding/json"
	"fmt"

	"github.com/frudas24/touchstick/internal/joystick"
)

// Message is a control channel payload. Clients send hello, down, move,
// up, resize, set, profile, and ping; the server replies with state,
// move, lock, longpress, draw, pong, and error.
type Message struct {
	T        string         `json:"t"`
	ID       int            `json:"id,omitempty"`
	X        float64        `json:"x,omitempty"`
	Y        float64        `json:"y,omitempty"`
	W        float64        `json:"w,omitempty"`
	H        float64        `json:"h,omitempty"`
	Key      string         `json:"key,omitempty"`
	Value    string         `json:"value,omitempty"`
	Name     string         `json:"name,omitempty"`
	Angle    int            `json:"angle,omitempty"`
	Strength int            `json:"strength,omitempty"`
	Locked   *bool          `json:"locked,omitempty"`
	Cmds     []joystick.Cmd `json:"cmds,omitempty"`
	State    *StatePayload  `json:"state,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// DriveState mirrors the host drive settings for state payloads.
type DriveState struct {
	Enabled bool    `json:"enabled"`
	Mode    string  `json:"mode"`
	Gain    float64 `json:"gain"`
	Layout  string  `json:"layout"`
	Monitor int     `json:"monitor"`
}

// StatePayload carries the full runtime state pushed to clients.
type StatePayload struct {
	joystick.Snapshot
	Drive         DriveState `json:"drive"`
	ActiveProfile string     `json:"activeProfile"`
	Clients       int        `json:"clients"`
}

// DecodeMessage parses a raw control payload and validates it per type.
func DecodeMessage(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("decode control message: %w", err)
	}
	switch msg.T {
	case "hello", "resize":
		if msg.W <= 0 || msg.H <= 0 {
			return Message{}, fmt.Errorf("%s requires positive w and h", msg.T)
		}
	case "down", "move", "up":
		if msg.ID < 0 {
			return Message{}, fmt.Errorf("%s requires a non-negative pointer id", msg.T)
		}
	case "set":
		if msg.Key == "" {
			return Message{}, fmt.Errorf("set requires a key")
		}
	case "profile":
		if msg.Name == "" {
			return Message{}, fmt.Errorf("profile requires a name")
		}
	case "ping":
	case "":
		return Message{}, fmt.Errorf("control message missing type")
	default:
		return Message{}, fmt.Errorf("unknown control message type %q", msg.T)
	}
	return msg, nil
}

// MoveReading builds a move broadcast with the current polar reading.
func MoveReading(angle, strength int) Message {
	return Message{T: "move", Angle: angle, Strength: strength}
}

// LockChange builds a forward-lock transition broadcast.
func LockChange(locked bool) Message {
	return Message{T: "lock", Locked: &locked}
}

// LongPress builds a two-finger long-press broadcast.
func LongPress() Message {
	return Message{T: "longpress"}
}

// Draw builds a draw-command broadcast.
func Draw(cmds []joystick.Cmd) Message {
	return Message{T: "draw", Cmds: cmds}
}

// StateUpdate builds a state broadcast.
func StateUpdate(state StatePayload) Message {
	return Message{T: "state", State: &state}
}

// ErrorReply builds an error reply.
func ErrorReply(err error) Message {
	return Message{T: "error", Error: err.Error()}
}
