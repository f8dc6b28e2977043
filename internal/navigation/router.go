// Package navigation tracks where the user currently is in the client and
// moves them elsewhere. It is owned by the user interface; the transport
// never navigates on its own and only publishes events that listeners here
// turn into redirects.
package navigation

import (
	"strings"
	"sync"

	"github.com/MKhiriev/campus-archive/internal/adapter"
	"github.com/MKhiriev/campus-archive/internal/logger"
)

// LoginPath is the location of the login view.
const LoginPath = "/login"

// Navigation is one location change.
type Navigation struct {
	From string
	To   string
	// Reason is a short machine-readable cause, e.g. "session_expired".
	Reason string
}

// Router holds the current location and notifies listeners on change.
// It is safe for concurrent use.
type Router struct {
	mu        sync.Mutex
	location  string
	listeners []func(Navigation)
}

// NewRouter returns a Router positioned at start.
func NewRouter(start string) *Router {
	return &Router{location: start}
}

// Location returns the current location.
func (r *Router) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.location
}

// SetLocation moves to path without notifying listeners. It is used to
// record where the user is, e.g. the command being run.
func (r *Router) SetLocation(path string) {
	r.mu.Lock()
	r.location = path
	r.mu.Unlock()
}

// Redirect moves to path and notifies listeners with reason.
func (r *Router) Redirect(path, reason string) {
	r.mu.Lock()
	nav := Navigation{From: r.location, To: path, Reason: reason}
	r.location = path
	listeners := make([]func(Navigation), len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(nav)
	}
}

// OnNavigate registers fn to be called after every Redirect.
func (r *Router) OnNavigate(fn func(Navigation)) {
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

// AtLogin reports whether the current location is the login view.
func (r *Router) AtLogin() bool {
	return strings.Contains(r.Location(), LoginPath)
}

// RedirectToLogin returns a SessionExpired listener that sends the user to
// the login view unless they are already there.
func RedirectToLogin(r *Router, log *logger.Logger) func(adapter.SessionExpired) {
	if log == nil {
		log = logger.Nop()
	}
	return func(ev adapter.SessionExpired) {
		if r.AtLogin() {
			log.Debug().Str("url", ev.URL).Msg("session expired while on login view")
			return
		}
		log.Info().Str("url", ev.URL).Str("from", r.Location()).Msg("session expired, redirecting to login")
		r.Redirect(LoginPath, "session_expired")
	}
}
