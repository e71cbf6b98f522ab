// Package guard decides which surface the console may render based on
// session state alone. The guard holds no state of its own.
package guard

import "github.com/louisbranch/assetdeck/internal/assets"

// State is the render state for protected surfaces.
type State int

const (
	// StateLoading means the session is still being resolved; render a
	// wait indicator and nothing protected.
	StateLoading State = iota
	// StateLogin means no session is active; render the login surface.
	StateLogin
	// StateReady means an authenticated session is active.
	StateReady
)

// String renders the state for logs.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLogin:
		return "login"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// SessionReader exposes the session state a guard decision needs.
// *session.Store satisfies it.
type SessionReader interface {
	Loading() bool
	Current() *assets.Session
}

// Resolve maps session state to a render state. It fails safe: an
// unavailable session accessor yields the login state, never a panic.
func Resolve(reader SessionReader) State {
	if reader == nil {
		return StateLogin
	}
	if reader.Loading() {
		return StateLoading
	}
	if reader.Current() == nil {
		return StateLogin
	}
	return StateReady
}
