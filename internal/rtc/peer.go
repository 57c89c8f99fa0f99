// Package rtc provides WebRTC signaling and the joystick data channel.
package rtc

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pion/interceptor"
	"github.com/pion/webrtc/v3"

	"github.com/frudas24/touchstick/internal/control"
)

// ChannelLabel is the data channel the client opens for joystick traffic.
const ChannelLabel = "joystick"

// Manager owns the WebRTC peer connection and its joystick data channel.
// Inbound channel messages reuse the control codec and are dispatched
// through handle; replies and broadcasts travel back over the channel.
type Manager struct {
	mu      sync.Mutex
	writeMu sync.Mutex
	api     *webrtc.API
	peer    *webrtc.PeerConnection
	channel *webrtc.DataChannel

	handle       func(msg control.Message, reply func(control.Message))
	onDisconnect func()
}

// NewManager initializes a WebRTC API with default codecs/interceptors.
// onDisconnect runs when an open joystick channel closes.
func NewManager(handle func(control.Message, func(control.Message)), onDisconnect func()) (*Manager, error) {
	media := &webrtc.MediaEngine{}
	if err := media.RegisterDefaultCodecs(); err != nil {
		return nil, fmt.Errorf("register codecs: %w", err)
	}

	interceptors := &interceptor.Registry{}
	if err := webrtc.RegisterDefaultInterceptors(media, interceptors); err != nil {
		return nil, fmt.Errorf("register interceptors: %w", err)
	}

	api := webrtc.NewAPI(
		webrtc.WithMediaEngine(media),
		webrtc.WithInterceptorRegistry(interceptors),
	)

	return &Manager{api: api, handle: handle, onDisconnect: onDisconnect}, nil
}

// NewPeer replaces any existing peer connection with a fresh one wired to
// accept the joystick data channel.
func (m *Manager) NewPeer() (*webrtc.PeerConnection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.peer != nil {
		_ = m.peer.Close()
		m.peer = nil
		m.channel = nil
	}

	peer, err := m.api.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		return nil, err
	}

	peer.OnDataChannel(func(dc *webrtc.DataChannel) {
		if dc.Label() != ChannelLabel {
			return
		}
		m.attachChannel(peer, dc)
	})

	m.peer = peer
	return peer, nil
}

// ClosePeer closes the current peer connection.
func (m *Manager) ClosePeer() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.peer != nil {
		_ = m.peer.Close()
		m.peer = nil
		m.channel = nil
	}
}

// Connected reports whether a joystick channel is open.
func (m *Manager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.channel != nil
}

// Send delivers a message over the joystick channel when one is open. Safe
// to call from any goroutine.
func (m *Manager) Send(msg control.Message) {
	m.mu.Lock()
	channel := m.channel
	m.mu.Unlock()
	if channel == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	_ = channel.SendText(string(data))
}

// attachChannel binds the joystick channel lifecycle and message handlers.
func (m *Manager) attachChannel(peer *webrtc.PeerConnection, dc *webrtc.DataChannel) {
	dc.OnOpen(func() {
		debugf("rtc: channel %q open", dc.Label())
		m.mu.Lock()
		if m.peer == peer {
			m.channel = dc
		}
		m.mu.Unlock()
	})
	dc.OnClose(func() {
		debugf("rtc: channel %q closed", dc.Label())
		m.mu.Lock()
		open := m.channel == dc
		if open {
			m.channel = nil
		}
		m.mu.Unlock()
		if open && m.onDisconnect != nil {
			m.onDisconnect()
		}
	})
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		m.handleRaw(msg.Data)
	})
}

// handleRaw decodes one channel payload and dispatches it.
func (m *Manager) handleRaw(data []byte) {
	msg, err := control.DecodeMessage(data)
	if err != nil {
		m.Send(control.ErrorReply(err))
		return
	}
	if m.handle != nil {
		m.handle(msg, m.Send)
	}
}
