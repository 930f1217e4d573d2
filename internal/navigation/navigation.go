// Package navigation tracks which top-level screen and which overlay sheet
// the wallet session is showing.
package navigation

import "sync"

// Screen is a top-level screen. Exactly one is active.
type Screen int

// Screens.
const (
	Home Screen = iota
	Explore
	Activity
)

// Screens lists every screen in tab order.
func Screens() []Screen {
	return []Screen{Home, Explore, Activity}
}

// String returns the screen name.
func (s Screen) String() string {
	switch s {
	case Home:
		return "home"
	case Explore:
		return "explore"
	case Activity:
		return "activity"
	default:
		return "unknown"
	}
}

// Overlay is a sheet shown over the current screen. There is no overlay
// stack: at most one is open.
type Overlay int

// Overlays.
const (
	None Overlay = iota
	SendSheet
	ReceiveSheet
)

// String returns the overlay name.
func (o Overlay) String() string {
	switch o {
	case None:
		return "none"
	case SendSheet:
		return "send"
	case ReceiveSheet:
		return "receive"
	default:
		return "unknown"
	}
}

// State holds the current screen and overlay. The two vary independently:
// changing screens leaves an open overlay open. Every transition is allowed.
// State is safe for concurrent use.
type State struct {
	mu      sync.RWMutex
	screen  Screen
	overlay Overlay
}

// New returns a State at Home with no overlay.
func New() *State {
	return &State{}
}

// Screen returns the active screen.
func (s *State) Screen() Screen {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screen
}

// Overlay returns the open overlay, or None.
func (s *State) Overlay() Overlay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlay
}

// SetScreen replaces the active screen.
func (s *State) SetScreen(screen Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = screen
}

// OpenOverlay replaces the open overlay.
func (s *State) OpenOverlay(o Overlay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = o
}

// CloseOverlay sets the overlay to None.
func (s *State) CloseOverlay() {
	s.OpenOverlay(None)
}

// Snapshot is a consistent view of both fields.
type Snapshot struct {
	Screen  Screen  `json:"screen"`
	Overlay Overlay `json:"overlay"`
}

// Snapshot returns the screen and overlay read together.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Screen: s.screen, Overlay: s.overlay}
}

// MarshalText implements encoding.TextMarshaler.
func (s Screen) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (o Overlay) MarshalText() ([]byte, error) { return []byte(o.String()), nil }
