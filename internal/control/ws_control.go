// Package control handles the joystick control protocol and its
// websocket transport.
package control

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/frudas24/touchstick/internal/joystick"
	"github.com/frudas24/touchstick/internal/session"
	"github.com/gorilla/websocket"
)

// Poster queues work onto the engine event loop.
type Poster interface {
	Post(fn func())
}

// Server handles websocket control connections. All widget access is
// posted onto the engine loop; writes to the peer are serialized.
type Server struct {
	mu        sync.Mutex
	writeMu   sync.Mutex
	upgrader  websocket.Upgrader
	session   *session.Session
	widget    *joystick.Widget
	loop      Poster
	onSet     func(key, value string) error
	onProfile func(name string) error
	onRefresh func()
	conn      *websocket.Conn
}

// NewServer creates a control websocket server. onSet receives settings the
// widget does not own, onProfile activates a named profile, and onRefresh
// runs on the loop after any change that should be pushed back to clients.
func NewServer(sess *session.Session, widget *joystick.Widget, loop Poster, onSet func(key, value string) error, onProfile func(name string) error, onRefresh func()) *Server {
	return &Server{
		session: sess,
		widget:  widget,
		loop:    loop,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		onSet:     onSet,
		onProfile: onProfile,
		onRefresh: onRefresh,
	}
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		_ = conn.WriteJSON(ErrorReply(err))
		_ = conn.Close()
		return
	}
	s.session.ClientConnected()
	defer s.cleanupConn(conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := DecodeMessage(data)
		if err != nil {
			s.Send(ErrorReply(err))
			continue
		}
		s.Handle(msg, s.Send)
	}
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("control connection already active")
	}
	s.conn = conn
	return nil
}

// cleanupConn clears the active connection and releases any gesture the
// peer left hanging.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
	s.session.ClientDisconnected()
	s.loop.Post(func() { s.widget.Reset() })
}

// Handle dispatches a single decoded control message. Widget work is posted
// onto the loop and replies go through reply, so any transport goroutine may
// call it. The websocket read loop and the data-channel transport share it.
func (s *Server) Handle(msg Message, reply func(Message)) {
	respond := func(m Message) {
		if reply != nil {
			reply(m)
		}
	}
	switch msg.T {
	case "hello", "resize":
		s.loop.Post(func() {
			s.widget.Resize(msg.W, msg.H)
			s.refresh()
		})
	case "down":
		s.loop.Post(func() { s.widget.HandleDown(msg.ID, msg.X, msg.Y) })
	case "move":
		s.loop.Post(func() { s.widget.HandleMove(msg.ID, msg.X, msg.Y) })
	case "up":
		s.loop.Post(func() { s.widget.HandleUp(msg.ID) })
	case "set":
		s.loop.Post(func() {
			if err := s.applySetting(msg.Key, msg.Value); err != nil {
				respond(ErrorReply(err))
				return
			}
			s.refresh()
		})
	case "profile":
		s.loop.Post(func() {
			if s.onProfile == nil {
				return
			}
			if err := s.onProfile(msg.Name); err != nil {
				respond(ErrorReply(err))
				return
			}
			s.refresh()
		})
	case "ping":
		respond(Message{T: "pong"})
	}
}

// applySetting applies one runtime setting. Widget-owned keys are handled
// here; everything else is delegated to the app through onSet. Runs on the
// loop.
func (s *Server) applySetting(key, value string) error {
	switch key {
	case "enabled":
		v, err := parseBoolValue(key, value)
		if err != nil {
			return err
		}
		s.widget.SetEnabled(v)
	case "fixedCenter":
		v, err := parseBoolValue(key, value)
		if err != nil {
			return err
		}
		s.widget.SetFixedCenter(v)
	case "autoRecenter":
		v, err := parseBoolValue(key, value)
		if err != nil {
			return err
		}
		s.widget.SetAutoRecenter(v)
	case "stickToBorder":
		v, err := parseBoolValue(key, value)
		if err != nil {
			return err
		}
		s.widget.SetStickToBorder(v)
	case "direction":
		d, ok := joystick.ParseDirection(value)
		if !ok {
			return fmt.Errorf("direction must be both, horizontal, or vertical")
		}
		s.widget.SetDirection(d)
	case "deadzone":
		n, err := parseIntValue(key, value)
		if err != nil {
			return err
		}
		s.widget.SetDeadzone(n)
	case "forwardLock":
		f, err := parseFloatValue(key, value)
		if err != nil {
			return err
		}
		s.widget.SetForwardLockDistance(f)
	case "refreshMs":
		n, err := parseIntValue(key, value)
		if err != nil {
			return err
		}
		s.widget.SetRefreshInterval(time.Duration(n) * time.Millisecond)
	case "buttonRatio":
		f, err := parseFloatValue(key, value)
		if err != nil {
			return err
		}
		s.widget.SetButtonSizeRatio(f)
	case "backgroundRatio":
		f, err := parseFloatValue(key, value)
		if err != nil {
			return err
		}
		s.widget.SetBackgroundSizeRatio(f)
	case "borderWidth":
		f, err := parseFloatValue(key, value)
		if err != nil {
			return err
		}
		s.widget.SetBorderWidth(f)
	default:
		if s.onSet == nil {
			return fmt.Errorf("unknown setting %q", key)
		}
		return s.onSet(key, value)
	}
	return nil
}

// refresh notifies the app that clients should receive fresh state.
func (s *Server) refresh() {
	if s.onRefresh != nil {
		s.onRefresh()
	}
}

// Send delivers a message to the connected client. Safe to call from any
// goroutine; a missing or broken connection is ignored.
func (s *Server) Send(msg Message) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = conn.WriteJSON(msg)
}

// parseBoolValue parses a boolean setting value.
func parseBoolValue(key, value string) (bool, error) {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", key)
	}
	return v, nil
}

// parseIntValue parses an integer setting value.
func parseIntValue(key, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

// parseFloatValue parses a float setting value.
func parseFloatValue(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return v, nil
}
