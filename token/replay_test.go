package token_test

import (
	"context"
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/captoken/eventsource"
	"github.com/pflow-xyz/captoken/ledger"
	"github.com/pflow-xyz/captoken/pause"
	"github.com/pflow-xyz/captoken/token"
)

func journaledPolicy(t *testing.T, store eventsource.Store) *token.Policy {
	t.Helper()
	p, err := token.New(context.Background(), "owner", token.Config{
		Name:      "Captoken",
		Symbol:    "CAP",
		MaxSupply: uint256.NewInt(1000),
		PauseMode: pause.Strict,
		Journal:   store,
		Stream:    "cap-1",
	})
	if err != nil {
		t.Fatalf("new policy failed: %v", err)
	}
	return p
}

func TestRestore(t *testing.T) {
	runRestoreTest := func(t *testing.T, store eventsource.Store) {
		ctx := context.Background()
		p := journaledPolicy(t, store)

		if err := p.Mint(ctx, "owner", "alice", uint256.NewInt(100)); err != nil {
			t.Fatalf("mint failed: %v", err)
		}
		if err := p.Transfer(ctx, "alice", "bob", uint256.NewInt(25)); err != nil {
			t.Fatalf("transfer failed: %v", err)
		}
		if err := p.Burn(ctx, "bob", uint256.NewInt(5)); err != nil {
			t.Fatalf("burn failed: %v", err)
		}
		if err := p.Pause(ctx, "owner"); err != nil {
			t.Fatalf("pause failed: %v", err)
		}
		if err := p.Unpause(ctx, "owner"); err != nil {
			t.Fatalf("unpause failed: %v", err)
		}
		if err := p.Pause(ctx, "owner"); err != nil {
			t.Fatalf("second pause failed: %v", err)
		}
		if err := p.TransferOwnership(ctx, "owner", "successor"); err != nil {
			t.Fatalf("transfer ownership failed: %v", err)
		}

		restored, err := token.Restore(ctx, store, "cap-1")
		if err != nil {
			t.Fatalf("restore failed: %v", err)
		}

		if got := restored.Name(); got != p.Name() {
			t.Errorf("expected name %q, got %q", p.Name(), got)
		}
		if got := restored.MaxSupply(); !got.Eq(p.MaxSupply()) {
			t.Errorf("expected max supply %s, got %s", p.MaxSupply().Dec(), got.Dec())
		}
		if got := restored.TotalSupply(); !got.Eq(p.TotalSupply()) {
			t.Errorf("expected supply %s, got %s", p.TotalSupply().Dec(), got.Dec())
		}
		for _, holder := range []ledger.Address{"alice", "bob"} {
			if got, want := restored.BalanceOf(holder), p.BalanceOf(holder); !got.Eq(want) {
				t.Errorf("holder %s: expected balance %s, got %s", holder, want.Dec(), got.Dec())
			}
		}
		if got := restored.Owner(); got != "successor" {
			t.Errorf("expected owner successor, got %q", got)
		}
		if !restored.Paused() {
			t.Error("expected restored policy paused")
		}
		if got := restored.PauseMode(); got != pause.Strict {
			t.Errorf("expected strict mode, got %v", got)
		}
	}

	t.Run("Memory", func(t *testing.T) {
		runRestoreTest(t, eventsource.NewMemoryStore())
	})

	t.Run("SQLite", func(t *testing.T) {
		store, err := eventsource.NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("failed to create sqlite store: %v", err)
		}
		defer store.Close()
		runRestoreTest(t, store)
	})
}

func TestRestoredPolicyKeepsJournaling(t *testing.T) {
	ctx := context.Background()
	store := eventsource.NewMemoryStore()
	p := journaledPolicy(t, store)

	if err := p.Mint(ctx, "owner", "alice", uint256.NewInt(10)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	restored, err := token.Restore(ctx, store, "cap-1")
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if err := restored.Mint(ctx, "owner", "alice", uint256.NewInt(5)); err != nil {
		t.Fatalf("mint on restored policy failed: %v", err)
	}

	again, err := token.Restore(ctx, store, "cap-1")
	if err != nil {
		t.Fatalf("second restore failed: %v", err)
	}
	if got := again.TotalSupply(); !got.Eq(uint256.NewInt(15)) {
		t.Errorf("expected supply 15 after replaying both mints, got %s", got.Dec())
	}
}

func TestRejectedOperationsNotJournaled(t *testing.T) {
	ctx := context.Background()
	store := eventsource.NewMemoryStore()
	p := journaledPolicy(t, store)

	p.Mint(ctx, "bob", "bob", uint256.NewInt(1))         // unauthorized
	p.Mint(ctx, "owner", "alice", uint256.NewInt(2000))  // over cap
	p.Transfer(ctx, "alice", "bob", uint256.NewInt(1))   // insufficient
	p.Unpause(ctx, "owner")                              // redundant toggle

	events, err := store.Read(ctx, "cap-1", 0)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	// Only the genesis event should exist.
	if len(events) != 1 || events[0].Type != token.EventCreated {
		t.Errorf("expected only the genesis event, got %d events", len(events))
	}
}

func TestDoubleDeploySameStream(t *testing.T) {
	ctx := context.Background()
	store := eventsource.NewMemoryStore()
	journaledPolicy(t, store)

	_, err := token.New(ctx, "owner", token.Config{
		Name:      "Captoken",
		Symbol:    "CAP",
		MaxSupply: uint256.NewInt(1000),
		Journal:   store,
		Stream:    "cap-1",
	})
	if !errors.Is(err, eventsource.ErrVersionConflict) {
		t.Errorf("expected ErrVersionConflict, got %v", err)
	}
}

func TestRestoreErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingStream", func(t *testing.T) {
		store := eventsource.NewMemoryStore()
		if _, err := token.Restore(ctx, store, "nope"); !errors.Is(err, eventsource.ErrStreamNotFound) {
			t.Errorf("expected ErrStreamNotFound, got %v", err)
		}
	})

	t.Run("MissingGenesis", func(t *testing.T) {
		store := eventsource.NewMemoryStore()
		e, _ := eventsource.NewEvent("bad", token.EventMinted, map[string]string{"to": "a", "amount": "1"})
		if _, err := store.Append(ctx, "bad", -1, []*eventsource.Event{e}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if _, err := token.Restore(ctx, store, "bad"); !errors.Is(err, token.ErrCorruptJournal) {
			t.Errorf("expected ErrCorruptJournal, got %v", err)
		}
	})

	t.Run("ForgedOverCapMint", func(t *testing.T) {
		store := eventsource.NewMemoryStore()
		journaledPolicy(t, store)

		// Replay skips guards; the forged mint must still be caught by
		// the invariant check over the restored state.
		e, _ := eventsource.NewEvent("cap-1", token.EventMinted, map[string]string{"to": "mallory", "amount": "2000"})
		if _, err := store.Append(ctx, "cap-1", 0, []*eventsource.Event{e}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if _, err := token.Restore(ctx, store, "cap-1"); !errors.Is(err, token.ErrCorruptJournal) {
			t.Errorf("expected ErrCorruptJournal for over-cap journal, got %v", err)
		}
	})

	t.Run("UnknownEventType", func(t *testing.T) {
		store := eventsource.NewMemoryStore()
		journaledPolicy(t, store)
		e, _ := eventsource.NewEvent("cap-1", "garbage", nil)
		if _, err := store.Append(ctx, "cap-1", 0, []*eventsource.Event{e}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if _, err := token.Restore(ctx, store, "cap-1"); !errors.Is(err, token.ErrCorruptJournal) {
			t.Errorf("expected ErrCorruptJournal, got %v", err)
		}
	})
}
