// Package token implements a fixed-cap, pausable, single-owner token
// policy over explicit collaborator components.
//
// The policy composes three independent pieces rather than inheriting
// their state: a ledger for balance accounting, a pause gate, and an
// owner controller. Pause and supply-cap enforcement are expressed as
// ordered ledger guards, evaluated before any balance mutation, so each
// guard is testable on its own.
//
// Every state-changing operation is a single atomic unit: preconditions
// are checked first, the intent is appended to the journal (when one is
// configured), and only then is state mutated. The apply step cannot
// fail after validation, so the journal always replays to the live
// state.
package token

import (
	"context"
	"sync"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/captoken/access"
	"github.com/pflow-xyz/captoken/eventsource"
	"github.com/pflow-xyz/captoken/ledger"
	"github.com/pflow-xyz/captoken/pause"
)

// Config carries the immutable deployment parameters of a policy.
type Config struct {
	// Name is the display name of the token. Required.
	Name string

	// Symbol is the short ticker of the token. Required.
	Symbol string

	// MaxSupply is the immutable upper bound on total supply.
	// Required, must be nonzero.
	MaxSupply *uint256.Int

	// PauseMode selects how redundant pause toggles behave.
	PauseMode pause.Mode

	// Journal, when set, records every state change as an event.
	Journal eventsource.Store

	// Stream is the journal stream identifier. Defaults to Symbol.
	Stream string
}

func (c Config) validate() error {
	if c.Name == "" || c.Symbol == "" {
		return ErrInvalidConfig
	}
	if c.MaxSupply == nil || c.MaxSupply.IsZero() {
		return ErrInvalidConfig
	}
	return nil
}

func (c Config) stream() string {
	if c.Stream != "" {
		return c.Stream
	}
	return c.Symbol
}

// Policy wires the ledger, pause gate, and owner controller together and
// enforces the supply cap.
type Policy struct {
	mu      sync.Mutex
	name    string
	symbol  string
	max     *uint256.Int
	book    *ledger.Ledger
	gate    *pause.Gate
	owners  *access.Controller
	journal eventsource.Store
	stream  string
	version int
}

// New deploys a policy. The deployer becomes the initial owner and the
// gate starts unpaused. When a journal is configured, a genesis event is
// appended; deploying twice onto the same stream fails with
// eventsource.ErrVersionConflict.
func New(ctx context.Context, deployer ledger.Address, cfg Config) (*Policy, error) {
	p, err := build(deployer, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Journal != nil {
		p.journal = cfg.Journal
		p.stream = cfg.stream()
	}
	if err := p.append(ctx, EventCreated, createdPayload{
		Name:      cfg.Name,
		Symbol:    cfg.Symbol,
		MaxSupply: cfg.MaxSupply.Dec(),
		PauseMode: cfg.PauseMode.String(),
		Owner:     string(deployer),
	}); err != nil {
		return nil, err
	}
	return p, nil
}

// build assembles an un-journaled policy from validated configuration.
func build(deployer ledger.Address, cfg Config) (*Policy, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	owners, err := access.NewController(deployer)
	if err != nil {
		return nil, err
	}

	gate := pause.NewGate(cfg.PauseMode)
	book := ledger.New()
	// Guard order matters: the pause gate vetoes before the cap is
	// consulted, matching the precondition order of the operations.
	book.RegisterGuard(gate.Guard())
	book.RegisterGuard(SupplyCapGuard(cfg.MaxSupply))

	return &Policy{
		name:    cfg.Name,
		symbol:  cfg.Symbol,
		max:     cfg.MaxSupply.Clone(),
		book:    book,
		gate:    gate,
		owners:  owners,
		version: -1,
	}, nil
}

// Name returns the token name.
func (p *Policy) Name() string { return p.name }

// Symbol returns the token symbol.
func (p *Policy) Symbol() string { return p.symbol }

// MaxSupply returns a copy of the immutable supply cap.
func (p *Policy) MaxSupply() *uint256.Int { return p.max.Clone() }

// TotalSupply returns the current total supply.
func (p *Policy) TotalSupply() *uint256.Int { return p.book.TotalSupply() }

// BalanceOf returns the balance of a holder.
func (p *Policy) BalanceOf(addr ledger.Address) *uint256.Int { return p.book.BalanceOf(addr) }

// Owner returns the current owner.
func (p *Policy) Owner() ledger.Address { return p.owners.Owner() }

// Paused reports whether balance movements are blocked.
func (p *Policy) Paused() bool { return p.gate.Paused() }

// PauseMode returns the configured toggle mode.
func (p *Policy) PauseMode() pause.Mode { return p.gate.Mode() }

// Holders returns the number of holders with a nonzero balance.
func (p *Policy) Holders() int { return p.book.Holders() }

// Stream returns the journal stream identifier, or "" when no journal
// is configured.
func (p *Policy) Stream() string { return p.stream }

// OnMovement registers an observer fired after every applied balance
// movement. The ledger itself stays private: all mutation goes through
// the policy's owner gate and journal.
func (p *Policy) OnMovement(fn ledger.Observer) { p.book.Subscribe(fn) }

// OnPauseChange registers a callback fired after every effective pause
// toggle.
func (p *Policy) OnPauseChange(fn func(paused bool)) { p.gate.OnChange(fn) }

// OnOwnershipTransfer registers a callback fired after every ownership
// change.
func (p *Policy) OnOwnershipTransfer(fn func(previous, next ledger.Address)) {
	p.owners.OnTransfer(fn)
}

// Mint credits amount to a holder. Restricted to the owner, blocked while
// paused, and bounded by the supply cap, checked in that order.
func (p *Policy) Mint(ctx context.Context, caller, to ledger.Address, amount *uint256.Int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.owners.Require(caller); err != nil {
		return err
	}
	m := ledger.Movement{Kind: ledger.MintMovement, From: ledger.ZeroAddress, To: to, Amount: amount}
	if err := p.book.Check(m); err != nil {
		return err
	}
	if err := p.append(ctx, EventMinted, movementPayload{To: string(to), Amount: dec(amount)}); err != nil {
		return err
	}
	return p.book.Mint(to, amount)
}

// Burn debits amount from a holder. Not owner-gated; the pause guard
// still applies.
func (p *Policy) Burn(ctx context.Context, from ledger.Address, amount *uint256.Int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	m := ledger.Movement{Kind: ledger.BurnMovement, From: from, To: ledger.ZeroAddress, Amount: amount}
	if err := p.book.Check(m); err != nil {
		return err
	}
	if err := p.append(ctx, EventBurned, movementPayload{From: string(from), Amount: dec(amount)}); err != nil {
		return err
	}
	return p.book.Burn(from, amount)
}

// Transfer moves amount between holders. Not owner-gated; the pause
// guard still applies.
func (p *Policy) Transfer(ctx context.Context, from, to ledger.Address, amount *uint256.Int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	m := ledger.Movement{Kind: ledger.TransferMovement, From: from, To: to, Amount: amount}
	if err := p.book.Check(m); err != nil {
		return err
	}
	if err := p.append(ctx, EventTransferred, movementPayload{From: string(from), To: string(to), Amount: dec(amount)}); err != nil {
		return err
	}
	return p.book.Transfer(from, to, amount)
}

// Pause engages the gate. Restricted to the owner; redundant calls
// behave per the configured mode.
func (p *Policy) Pause(ctx context.Context, caller ledger.Address) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.owners.Require(caller); err != nil {
		return err
	}
	if p.gate.Paused() {
		// Redundant toggle: no state change, nothing journaled.
		return p.gate.Pause()
	}
	if err := p.append(ctx, EventPaused, nil); err != nil {
		return err
	}
	return p.gate.Pause()
}

// Unpause releases the gate. Restricted to the owner; redundant calls
// behave per the configured mode.
func (p *Policy) Unpause(ctx context.Context, caller ledger.Address) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.owners.Require(caller); err != nil {
		return err
	}
	if !p.gate.Paused() {
		return p.gate.Unpause()
	}
	if err := p.append(ctx, EventUnpaused, nil); err != nil {
		return err
	}
	return p.gate.Unpause()
}

// TransferOwnership reassigns the owner. Restricted to the current owner.
func (p *Policy) TransferOwnership(ctx context.Context, caller, next ledger.Address) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.owners.Require(caller); err != nil {
		return err
	}
	if next == ledger.ZeroAddress {
		return access.ErrInvalidOwner
	}
	if err := p.append(ctx, EventOwnershipTransferred, ownershipPayload{
		Previous: string(caller),
		Next:     string(next),
	}); err != nil {
		return err
	}
	return p.owners.TransferOwnership(caller, next)
}

func (p *Policy) append(ctx context.Context, eventType string, payload any) error {
	if p.journal == nil {
		return nil
	}
	e, err := eventsource.NewEvent(p.stream, eventType, payload)
	if err != nil {
		return err
	}
	version, err := p.journal.Append(ctx, p.stream, p.version, []*eventsource.Event{e})
	if err != nil {
		return err
	}
	p.version = version
	return nil
}

func dec(amount *uint256.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.Dec()
}
