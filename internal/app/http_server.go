// Package app wires the engine loop, transports, preview, and host drive.
package app

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/frudas24/touchstick/internal/control"
	"github.com/frudas24/touchstick/internal/web"
)

// RegisterRoutes wires API and static handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	if staticDir == "" {
		staticDir = filepath.Join("internal", "web", "static")
	}

	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/profiles", a.handleProfiles)
	mux.HandleFunc("/api/monitors", a.handleMonitors)
	mux.Handle("/ws/control", a.Control())
	mux.Handle("/ws/signal", a.Signaling())
	mux.HandleFunc("/favicon.ico", handleFavicon)
	if pub := a.Preview(); pub != nil {
		mux.HandleFunc("/preview.mjpeg", a.handlePreview)
	}

	mux.Handle("/", staticFileServer(staticDir))
}

type loginRequest struct {
	Password string `json:"password"`
}

type profileRequest struct {
	Action string `json:"action"`
	Name   string `json:"name"`
}

type stateResponse struct {
	control.StatePayload
	Authenticated bool `json:"authenticated"`
}

// handleLogin authenticates the session.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.session.Authenticate(req.Password) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleLogout clears authentication state.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.session.Logout()
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleState returns the widget, drive, and session state.
func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	var payload control.StatePayload
	a.loop.Call(func() { payload = a.statePayload() })
	resp := stateResponse{
		StatePayload:  payload,
		Authenticated: a.session.IsAuthenticated(),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// handleProfiles lists the stored presets on GET and activates or saves one
// on POST.
func (a *App) handleProfiles(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		f, err := a.ListProfiles()
		if err != nil {
			http.Error(w, "failed to load profiles", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(f)
	case http.MethodPost:
		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		var err error
		switch req.Action {
		case "activate":
			err = a.ActivateProfile(req.Name)
		case "save":
			err = a.SaveProfile(req.Name)
		default:
			http.Error(w, "action must be activate or save", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleMonitors returns the list of monitors.
func (a *App) handleMonitors(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	_ = json.NewEncoder(w).Encode(a.ListMonitors())
}

// handlePreview serves the MJPEG preview stream.
func (a *App) handlePreview(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	a.Preview().Stream().Handler(w, r)
}

// requireAuth returns false and writes an error if the session is not
// authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// staticFileServer returns a handler for static assets, preferring disk then
// embed.
func staticFileServer(staticDir string) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	embedded, err := web.StaticFS()
	if err != nil {
		log.Printf("static assets unavailable: %v", err)
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
