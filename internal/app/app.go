// Package app wires the engine loop, transports, preview, and host drive.
package app

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/frudas24/touchstick/internal/config"
	"github.com/frudas24/touchstick/internal/control"
	"github.com/frudas24/touchstick/internal/drive"
	"github.com/frudas24/touchstick/internal/eventloop"
	"github.com/frudas24/touchstick/internal/hostinput"
	"github.com/frudas24/touchstick/internal/joystick"
	"github.com/frudas24/touchstick/internal/monitor"
	"github.com/frudas24/touchstick/internal/preview"
	"github.com/frudas24/touchstick/internal/profile"
	"github.com/frudas24/touchstick/internal/rtc"
	"github.com/frudas24/touchstick/internal/session"
)

// loopScheduler adapts the event loop to the widget's scheduler seam.
type loopScheduler struct {
	loop *eventloop.Loop
}

func (s loopScheduler) Schedule(d time.Duration, fn func()) joystick.Task {
	return s.loop.Schedule(d, fn)
}

func (s loopScheduler) Repeat(interval time.Duration, fn func()) joystick.Task {
	return s.loop.Repeat(interval, fn)
}

// App coordinates the HTTP API, the websocket and data-channel transports,
// the widget loop, and the host drive.
type App struct {
	mu  sync.Mutex
	cfg config.Config

	session *session.Session
	loop    *eventloop.Loop
	widget  *joystick.Widget
	driver  *drive.Driver

	control   *control.Server
	rtc       *rtc.Manager
	signaling *rtc.Server
	preview   *preview.Publisher

	// style is the client draw palette. Loop-owned like the widget.
	style joystick.Style

	monitors    []monitor.Monitor
	previewTask *eventloop.Timer
}

// New creates the application with its dependencies wired. The loop must be
// started separately; nothing runs until then.
func New(cfg config.Config, sess *session.Session, loop *eventloop.Loop, injector hostinput.Injector) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if loop == nil {
		return nil, errors.New("event loop is required")
	}
	if injector == nil {
		return nil, errors.New("injector is required")
	}

	a := &App{
		cfg:     cfg,
		session: sess,
		loop:    loop,
	}

	layout, _ := drive.ParseLayout(cfg.KeyLayout)
	a.driver = drive.New(injector, drive.Config{Gain: cfg.DriveGain, Layout: layout})

	p := profile.Default()
	opts := p.Options()
	opts.OnMove = a.onMove
	opts.OnForwardLock = a.onForwardLock
	opts.OnMultiLongPress = a.onMultiLongPress
	a.widget = joystick.New(loopScheduler{loop: loop}, opts)
	a.style = p.Style()

	a.control = control.NewServer(sess, a.widget, loop, a.applySetting, a.activateProfile, a.pushState)

	manager, err := rtc.NewManager(a.control.Handle, a.onChannelDown)
	if err != nil {
		return nil, err
	}
	a.rtc = manager
	a.signaling = rtc.NewServer(manager, rtc.ParseViewerPolicy(cfg.ViewerPolicy), sess.IsAuthenticated)

	if cfg.PreviewEnabled {
		interval := time.Duration(cfg.PreviewIntervalMs) * time.Millisecond
		a.preview = preview.NewPublisher(cfg.PreviewSize, cfg.PreviewQuality, interval/2)
	}

	return a, nil
}

// Start loads persisted state and plants the periodic preview render. The
// event loop must already be running.
func (a *App) Start() error {
	monitors, err := monitor.List()
	if err != nil {
		log.Printf("monitor enumeration unavailable: %v", err)
		monitors = nil
	}
	a.mu.Lock()
	a.monitors = monitors
	a.mu.Unlock()

	f, err := profile.Load(a.cfg.ProfilesPath)
	if err != nil {
		return err
	}

	a.loop.Call(func() {
		if f.Active != "" {
			a.applyProfile(f.ActiveProfile())
		} else {
			// No stored preset: keep the env-seeded driver settings.
			a.session.SetActiveProfile(profile.Default().Name)
		}
		a.selectMonitor(a.cfg.MonitorIndex)
	})

	if a.preview != nil {
		interval := time.Duration(a.cfg.PreviewIntervalMs) * time.Millisecond
		a.previewTask = a.loop.Repeat(interval, func() {
			a.preview.Frame(a.widget, a.style)
		})
	}
	return nil
}

// Stop ends the preview render and releases any held host input. The loop
// must still be running.
func (a *App) Stop() {
	if a.previewTask != nil {
		a.previewTask.Stop()
	}
	a.loop.Call(func() {
		a.widget.Reset()
		a.releaseDrive()
	})
	a.rtc.ClosePeer()
}

// onMove fans one engine reading out to the transports and the host driver.
// Runs on the loop.
func (a *App) onMove(angle, strength int) {
	msg := control.MoveReading(angle, strength)
	a.control.Send(msg)
	a.rtc.Send(msg)
	a.pushDraw()
	if a.session.DriveEnabled() {
		if err := a.driver.Apply(angle, strength); err != nil {
			log.Printf("drive: %v", err)
		}
	}
}

// onForwardLock broadcasts lock transitions. Runs on the loop.
func (a *App) onForwardLock(locked bool) {
	msg := control.LockChange(locked)
	a.control.Send(msg)
	a.rtc.Send(msg)
	a.pushDraw()
}

// onMultiLongPress broadcasts the two-finger long-press event. Runs on the
// loop.
func (a *App) onMultiLongPress() {
	msg := control.LongPress()
	a.control.Send(msg)
	a.rtc.Send(msg)
}

// onChannelDown ends the gesture when the data channel drops mid-press so
// the pointer stops and held keys come back up.
func (a *App) onChannelDown() {
	a.loop.Post(func() {
		a.widget.Reset()
		a.releaseDrive()
	})
}

// pushState broadcasts the full state plus a fresh draw list. Runs on the
// loop.
func (a *App) pushState() {
	msg := control.StateUpdate(a.statePayload())
	a.control.Send(msg)
	a.rtc.Send(msg)
	a.pushDraw()
}

// pushDraw broadcasts the current draw-command list. Runs on the loop.
func (a *App) pushDraw() {
	msg := control.Draw(a.widget.Render(a.style))
	a.control.Send(msg)
	a.rtc.Send(msg)
}

// statePayload assembles the client-facing state. Runs on the loop.
func (a *App) statePayload() control.StatePayload {
	return control.StatePayload{
		Snapshot: a.widget.Snapshot(),
		Drive: control.DriveState{
			Enabled: a.session.DriveEnabled(),
			Mode:    string(a.driver.Mode()),
			Gain:    a.driver.Gain(),
			Layout:  string(a.driver.Layout()),
			Monitor: a.session.Monitor(),
		},
		ActiveProfile: a.session.ActiveProfile(),
		Clients:       a.session.Clients(),
	}
}

// applySetting handles the setting keys the widget does not own. Runs on the
// loop.
func (a *App) applySetting(key, value string) error {
	switch key {
	case "drive":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("drive must be a boolean")
		}
		a.session.SetDriveEnabled(enabled)
		if !enabled {
			a.releaseDrive()
		}
	case "driveMode":
		mode, ok := drive.ParseMode(value)
		if !ok {
			return fmt.Errorf("driveMode must be pointer or keys")
		}
		if err := a.driver.SetMode(mode); err != nil {
			log.Printf("switch drive mode: %v", err)
		}
		a.session.SetDriveMode(string(mode))
	case "driveGain":
		gain, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("driveGain must be a number")
		}
		a.driver.SetGain(gain)
	case "keyLayout":
		layout, ok := drive.ParseLayout(value)
		if !ok {
			return fmt.Errorf("keyLayout must be arrows or wasd")
		}
		if err := a.driver.SetLayout(layout); err != nil {
			log.Printf("switch key layout: %v", err)
		}
	case "monitor":
		idx, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("monitor must be an integer")
		}
		a.selectMonitor(idx)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// selectMonitor updates the session's monitor index and recages the driver.
// Runs on the loop.
func (a *App) selectMonitor(idx int) {
	a.session.SetMonitor(idx)
	a.mu.Lock()
	monitors := a.monitors
	a.mu.Unlock()
	if m, ok := monitor.Pick(monitors, idx); ok {
		a.driver.SetCage(m)
	} else {
		a.driver.ClearCage()
	}
}

// releaseDrive drops pending movement and lifts held keys. Runs on the loop.
func (a *App) releaseDrive() {
	if err := a.driver.Release(); err != nil {
		log.Printf("release host input: %v", err)
	}
}

// activateProfile applies a stored preset and persists it as active. The
// built-in default works even when the file does not carry it. Runs on the
// loop.
func (a *App) activateProfile(name string) error {
	f, err := profile.Load(a.cfg.ProfilesPath)
	if err != nil {
		return err
	}
	p, ok := f.ByName(name)
	if !ok {
		if name != profile.Default().Name {
			return fmt.Errorf("profile %q not found", name)
		}
		p = profile.Default()
	}
	a.applyProfile(p)
	f.Active = name
	return profile.Save(a.cfg.ProfilesPath, f)
}

// applyProfile pushes a preset onto the widget, style, driver, and session.
// Runs on the loop.
func (a *App) applyProfile(p profile.Profile) {
	p.ApplyTo(a.widget)
	a.style = p.Style()
	cfg := p.DriveConfig()
	if err := a.driver.SetMode(cfg.Mode); err != nil {
		log.Printf("switch drive mode: %v", err)
	}
	a.driver.SetGain(cfg.Gain)
	if err := a.driver.SetLayout(cfg.Layout); err != nil {
		log.Printf("switch key layout: %v", err)
	}
	a.session.SetDriveMode(string(cfg.Mode))
	a.session.SetActiveProfile(p.Name)
}

// ActivateProfile applies a stored preset and pushes the new state to
// clients. Safe from any goroutine except the loop.
func (a *App) ActivateProfile(name string) error {
	var err error
	a.loop.Call(func() { err = a.activateProfile(name) })
	if err != nil {
		return err
	}
	a.loop.Post(a.pushState)
	return nil
}

// SaveProfile captures the current runtime settings under name, persists
// them, and marks the preset active. Safe from any goroutine except the
// loop.
func (a *App) SaveProfile(name string) error {
	var p profile.Profile
	a.loop.Call(func() {
		p = profile.FromState(name, a.widget, a.driver, a.style)
	})
	if err := p.Validate(); err != nil {
		return err
	}
	f, err := profile.Load(a.cfg.ProfilesPath)
	if err != nil {
		return err
	}
	f.Upsert(p)
	f.Active = name
	if err := profile.Save(a.cfg.ProfilesPath, f); err != nil {
		return err
	}
	a.session.SetActiveProfile(name)
	a.loop.Post(a.pushState)
	return nil
}

// ListProfiles returns the stored profile set with the built-in default
// preset injected when the file does not carry one.
func (a *App) ListProfiles() (profile.File, error) {
	f, err := profile.Load(a.cfg.ProfilesPath)
	if err != nil {
		return profile.File{}, err
	}
	def := profile.Default()
	if _, ok := f.ByName(def.Name); !ok {
		f.Profiles = append([]profile.Profile{def}, f.Profiles...)
	}
	if f.Active == "" {
		f.Active = a.session.ActiveProfile()
	}
	return f, nil
}

// ListMonitors returns the cached monitor list.
func (a *App) ListMonitors() []monitor.Monitor {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]monitor.Monitor, len(a.monitors))
	copy(out, a.monitors)
	return out
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}

// Signaling returns the signaling websocket handler.
func (a *App) Signaling() *rtc.Server {
	return a.signaling
}

// Preview returns the preview publisher, nil when disabled.
func (a *App) Preview() *preview.Publisher {
	return a.preview
}
