// Package applock models the application lock as a small state machine.
// It holds no platform dependencies: foreground/background transitions and
// authentication outcomes come in as events, and the host decides how to
// present a prompt when the machine enters StatePrompting.
package applock

import "sync"

// State is the lock state of the application.
type State int

const (
	// StateLocked means content is hidden and authentication is required.
	StateLocked State = iota
	// StatePrompting means an authentication prompt should be showing.
	StatePrompting
	// StateUnlocked means the user has authenticated.
	StateUnlocked
)

func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StatePrompting:
		return "prompting"
	case StateUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// Machine tracks the lock state across foreground/background transitions
// and authentication outcomes. Safe for concurrent use.
type Machine struct {
	mu      sync.Mutex
	state   State
	enabled bool
}

// New creates a lock machine. When the lock is disabled the machine stays
// permanently unlocked.
func New(enabled bool) *Machine {
	state := StateUnlocked
	if enabled {
		state = StateLocked
	}
	return &Machine{state: state, enabled: enabled}
}

// State returns the current lock state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Foreground signals that the app became visible. A locked app moves to
// prompting; an unlocked app stays unlocked.
func (m *Machine) Foreground() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enabled && m.state == StateLocked {
		m.state = StatePrompting
	}
	return m.state
}

// Background signals that the app was hidden. Any pending prompt is
// cancelled and the app re-locks.
func (m *Machine) Background() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enabled {
		m.state = StateLocked
	}
	return m.state
}

// AuthSucceeded reports a successful authentication while prompting.
func (m *Machine) AuthSucceeded() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StatePrompting {
		m.state = StateUnlocked
	}
	return m.state
}

// AuthFailed reports a failed or dismissed authentication while prompting.
func (m *Machine) AuthFailed() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StatePrompting {
		m.state = StateLocked
	}
	return m.state
}
