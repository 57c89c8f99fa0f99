// Package session holds runtime state for the active controller.
package session

import "sync"

// DrivePointer forwards joystick readings as relative cursor motion.
const DrivePointer = "pointer"

// DriveKeys forwards joystick readings as 8-way key presses.
const DriveKeys = "keys"

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	Authenticated bool
	DriveEnabled  bool
	DriveMode     string
	MonitorIndex  int
	ActiveProfile string
	Clients       int
}

// Session holds runtime state for the active controller.
type Session struct {
	mu            sync.RWMutex
	password      string
	authenticated bool
	driveEnabled  bool
	driveMode     string
	monitorIndex  int
	activeProfile string
	clients       int
}

// New returns an initialized session with the given password.
func New(password string) *Session {
	return &Session{
		password:  password,
		driveMode: DrivePointer,
	}
}

// Authenticate validates the password and marks the session as authenticated.
func (s *Session) Authenticate(pass string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pass != "" && pass == s.password {
		s.authenticated = true
		return true
	}
	s.authenticated = false
	return false
}

// Logout clears authentication state.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
}

// IsAuthenticated reports whether the session is authenticated.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// SetDriveEnabled toggles whether readings are forwarded to the host.
func (s *Session) SetDriveEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.driveEnabled = enabled
}

// DriveEnabled reports whether readings are forwarded to the host.
func (s *Session) DriveEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.driveEnabled
}

// SetDriveMode sets how readings are forwarded to the host.
func (s *Session) SetDriveMode(mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch mode {
	case DriveKeys:
		s.driveMode = DriveKeys
	default:
		s.driveMode = DrivePointer
	}
}

// DriveMode returns how readings are forwarded to the host.
func (s *Session) DriveMode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.driveMode == "" {
		return DrivePointer
	}
	return s.driveMode
}

// SetMonitor sets the cursor cage monitor index.
func (s *Session) SetMonitor(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.monitorIndex = idx
}

// Monitor returns the cursor cage monitor index.
func (s *Session) Monitor() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.monitorIndex
}

// SetActiveProfile records the name of the profile currently applied.
func (s *Session) SetActiveProfile(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeProfile = name
}

// ActiveProfile returns the name of the profile currently applied.
func (s *Session) ActiveProfile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeProfile
}

// ClientConnected records a new control client and returns the new count.
func (s *Session) ClientConnected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients++
	return s.clients
}

// ClientDisconnected records a departed control client and returns the new count.
func (s *Session) ClientDisconnected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clients > 0 {
		s.clients--
	}
	return s.clients
}

// Clients returns the number of connected control clients.
func (s *Session) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Authenticated: s.authenticated,
		DriveEnabled:  s.driveEnabled,
		DriveMode:     s.driveMode,
		MonitorIndex:  s.monitorIndex,
		ActiveProfile: s.activeProfile,
		Clients:       s.clients,
	}
}
