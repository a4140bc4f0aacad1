// Package pause provides a boolean gate that blocks balance movements
// while engaged. Whether a redundant toggle fails or silently no-ops is an
// explicit configuration choice, since conventions differ between pause
// implementations.
package pause

import (
	"errors"
	"sync"

	"github.com/pflow-xyz/captoken/ledger"
)

var (
	ErrPaused          = errors.New("pause: operations are paused")
	ErrAlreadyPaused   = errors.New("pause: already paused")
	ErrAlreadyUnpaused = errors.New("pause: already unpaused")
)

// Mode selects the behavior of a redundant Pause or Unpause call.
type Mode int

const (
	// Strict rejects a redundant toggle with ErrAlreadyPaused or
	// ErrAlreadyUnpaused.
	Strict Mode = iota
	// Idempotent treats a redundant toggle as a silent no-op.
	Idempotent
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Idempotent:
		return "idempotent"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name as produced by String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "strict":
		return Strict, nil
	case "idempotent":
		return Idempotent, nil
	default:
		return 0, errors.New("pause: unknown mode " + s)
	}
}

// Gate holds the paused flag.
type Gate struct {
	mu       sync.Mutex
	mode     Mode
	paused   bool
	onChange func(paused bool)
}

// NewGate creates an unpaused gate with the given toggle mode.
func NewGate(mode Mode) *Gate {
	return &Gate{mode: mode}
}

// Mode returns the configured toggle mode.
func (g *Gate) Mode() Mode {
	return g.mode
}

// Paused reports whether the gate is engaged.
func (g *Gate) Paused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}

// OnChange registers a callback invoked after every effective toggle.
func (g *Gate) OnChange(fn func(paused bool)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onChange = fn
}

// Pause engages the gate.
func (g *Gate) Pause() error {
	return g.set(true, ErrAlreadyPaused)
}

// Unpause releases the gate.
func (g *Gate) Unpause() error {
	return g.set(false, ErrAlreadyUnpaused)
}

func (g *Gate) set(paused bool, redundant error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.paused == paused {
		if g.mode == Strict {
			return redundant
		}
		return nil
	}
	g.paused = paused
	if g.onChange != nil {
		g.onChange(paused)
	}
	return nil
}

// Guard exposes the gate as a ledger guard. While the gate is engaged,
// every balance movement is rejected with ErrPaused.
func (g *Gate) Guard() ledger.Guard {
	return ledger.Guard{
		Name: "pause",
		Check: func(v ledger.View, m ledger.Movement) error {
			if g.Paused() {
				return ErrPaused
			}
			return nil
		},
	}
}
