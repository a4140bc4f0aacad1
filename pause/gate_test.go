package pause

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/captoken/ledger"
)

func TestStrictMode(t *testing.T) {
	g := NewGate(Strict)

	if g.Paused() {
		t.Fatal("new gate should be unpaused")
	}
	if err := g.Unpause(); !errors.Is(err, ErrAlreadyUnpaused) {
		t.Errorf("expected ErrAlreadyUnpaused, got %v", err)
	}

	if err := g.Pause(); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if !g.Paused() {
		t.Error("expected paused after Pause")
	}
	if err := g.Pause(); !errors.Is(err, ErrAlreadyPaused) {
		t.Errorf("expected ErrAlreadyPaused, got %v", err)
	}

	if err := g.Unpause(); err != nil {
		t.Fatalf("unpause failed: %v", err)
	}
	if g.Paused() {
		t.Error("expected unpaused after Unpause")
	}
}

func TestIdempotentMode(t *testing.T) {
	g := NewGate(Idempotent)

	if err := g.Pause(); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if err := g.Pause(); err != nil {
		t.Errorf("redundant pause should no-op, got %v", err)
	}
	if !g.Paused() {
		t.Error("expected paused")
	}

	if err := g.Unpause(); err != nil {
		t.Fatalf("unpause failed: %v", err)
	}
	if err := g.Unpause(); err != nil {
		t.Errorf("redundant unpause should no-op, got %v", err)
	}
}

func TestOnChange(t *testing.T) {
	g := NewGate(Idempotent)
	var toggles []bool
	g.OnChange(func(paused bool) {
		toggles = append(toggles, paused)
	})

	g.Pause()
	g.Pause() // redundant, must not fire
	g.Unpause()

	if len(toggles) != 2 || toggles[0] != true || toggles[1] != false {
		t.Errorf("expected [true false], got %v", toggles)
	}
}

func TestGuardBlocksMovements(t *testing.T) {
	g := NewGate(Strict)
	l := ledger.New()
	l.RegisterGuard(g.Guard())

	if err := l.Mint("alice", uint256.NewInt(1)); err != nil {
		t.Fatalf("mint while unpaused failed: %v", err)
	}

	if err := g.Pause(); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if err := l.Mint("alice", uint256.NewInt(1)); !errors.Is(err, ErrPaused) {
		t.Errorf("expected ErrPaused, got %v", err)
	}
	if err := l.Transfer("alice", "bob", uint256.NewInt(1)); !errors.Is(err, ErrPaused) {
		t.Errorf("expected ErrPaused, got %v", err)
	}
	if got := l.TotalSupply(); !got.Eq(uint256.NewInt(1)) {
		t.Errorf("paused movements changed supply: %s", got.Dec())
	}

	if err := g.Unpause(); err != nil {
		t.Fatalf("unpause failed: %v", err)
	}
	if err := l.Mint("alice", uint256.NewInt(1)); err != nil {
		t.Errorf("mint after unpause failed: %v", err)
	}
}

func TestModeRoundTrip(t *testing.T) {
	for _, mode := range []Mode{Strict, Idempotent} {
		parsed, err := ParseMode(mode.String())
		if err != nil {
			t.Fatalf("parse %q failed: %v", mode.String(), err)
		}
		if parsed != mode {
			t.Errorf("expected %v, got %v", mode, parsed)
		}
	}
	if _, err := ParseMode("bogus"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
