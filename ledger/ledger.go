// Package ledger implements per-holder balance accounting with an
// overflow-checked running total supply.
//
// Every balance movement (mint, burn, transfer) is validated against an
// ordered chain of guard predicates before any state is touched. A movement
// either applies in full or fails with no effect; observers are notified
// only after a movement has been applied.
//
// The ledger enforces no upper bound on total supply beyond uint256
// overflow. Policy-level bounds (such as a supply cap) are expressed as
// guards registered by the caller.
package ledger

import (
	"sync"

	"github.com/holiman/uint256"
)

// Address identifies a balance holder.
type Address string

// ZeroAddress is the null holder. Mints move value from it, burns move
// value to it. It can never hold a balance.
const ZeroAddress Address = ""

// MovementKind classifies a balance movement.
type MovementKind int

const (
	MintMovement MovementKind = iota
	BurnMovement
	TransferMovement
)

// String returns the lowercase kind name.
func (k MovementKind) String() string {
	switch k {
	case MintMovement:
		return "mint"
	case BurnMovement:
		return "burn"
	case TransferMovement:
		return "transfer"
	default:
		return "unknown"
	}
}

// Movement describes a pending or applied balance change.
// Mints carry From == ZeroAddress, burns carry To == ZeroAddress.
type Movement struct {
	Kind   MovementKind
	From   Address
	To     Address
	Amount *uint256.Int
}

// View is the read-only ledger state visible to guards during validation.
// This interface keeps guards independent of the ledger implementation.
type View interface {
	// TotalSupply returns the pre-movement total supply.
	TotalSupply() *uint256.Int
	// BalanceOf returns the pre-movement balance of a holder.
	BalanceOf(addr Address) *uint256.Int
}

// GuardFunc validates a pending movement against the current ledger view.
// A non-nil error vetoes the movement.
type GuardFunc func(v View, m Movement) error

// Guard is a named predicate evaluated before a movement is applied.
// Guards run in registration order; the first error aborts the movement.
type Guard struct {
	Name  string
	Check GuardFunc
}

// Observer is notified after a movement has been applied.
// Observers must not call back into the ledger.
type Observer func(m Movement)

// Ledger holds per-holder balances and the running total supply.
type Ledger struct {
	mu        sync.Mutex
	balances  map[Address]*uint256.Int
	total     *uint256.Int
	guards    []Guard
	observers []Observer
}

// New creates an empty ledger with no guards and no observers.
func New() *Ledger {
	return &Ledger{
		balances: make(map[Address]*uint256.Int),
		total:    uint256.NewInt(0),
	}
}

// RegisterGuard appends a guard to the chain. Guards are evaluated in
// registration order on every movement.
func (l *Ledger) RegisterGuard(g Guard) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.guards = append(l.guards, g)
}

// Subscribe registers an observer for applied movements.
func (l *Ledger) Subscribe(fn Observer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, fn)
}

// TotalSupply returns a copy of the current total supply.
func (l *Ledger) TotalSupply() *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total.Clone()
}

// BalanceOf returns a copy of a holder's balance. Unknown holders have a
// zero balance.
func (l *Ledger) BalanceOf(addr Address) *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceLocked(addr).Clone()
}

// Holders returns the number of holders with a recorded balance.
func (l *Ledger) Holders() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.balances)
}

// Mint credits amount to a holder and raises the total supply.
func (l *Ledger) Mint(to Address, amount *uint256.Int) error {
	return l.move(Movement{Kind: MintMovement, From: ZeroAddress, To: to, Amount: normalize(amount)}, true)
}

// Burn debits amount from a holder and lowers the total supply.
func (l *Ledger) Burn(from Address, amount *uint256.Int) error {
	return l.move(Movement{Kind: BurnMovement, From: from, To: ZeroAddress, Amount: normalize(amount)}, true)
}

// Transfer moves amount between two holders. Total supply is unchanged.
func (l *Ledger) Transfer(from, to Address, amount *uint256.Int) error {
	return l.move(Movement{Kind: TransferMovement, From: from, To: to, Amount: normalize(amount)}, true)
}

// Check validates a movement against the guard chain, address rules, and
// balances without applying it. Used to establish a write-ahead boundary:
// callers validate, persist their intent, then apply.
func (l *Ledger) Check(m Movement) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	m.Amount = normalize(m.Amount)
	return l.validateLocked(m, true)
}

// Replay applies a movement without consulting the guard chain. It still
// enforces address, balance, and overflow rules, so a corrupt journal is
// detected. Used when rebuilding state from a recorded event stream.
func (l *Ledger) Replay(m Movement) error {
	m.Amount = normalize(m.Amount)
	return l.move(m, false)
}

func (l *Ledger) move(m Movement, guarded bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.validateLocked(m, guarded); err != nil {
		return err
	}
	l.applyLocked(m)

	for _, fn := range l.observers {
		fn(m)
	}
	return nil
}

// validateLocked checks a movement without mutating anything. The guard
// chain runs first: policy-level vetoes (pause, supply bounds) take
// precedence over the intrinsic address and balance rules, so a guard
// decides the error a caller sees.
func (l *Ledger) validateLocked(m Movement, guarded bool) error {
	if guarded {
		view := lockedView{l}
		for _, g := range l.guards {
			if err := g.Check(view, m); err != nil {
				return err
			}
		}
	}

	switch m.Kind {
	case MintMovement:
		if m.To == ZeroAddress {
			return ErrInvalidAddress
		}
		if _, overflow := new(uint256.Int).AddOverflow(l.total, m.Amount); overflow {
			return ErrSupplyOverflow
		}
		if _, overflow := new(uint256.Int).AddOverflow(l.balanceLocked(m.To), m.Amount); overflow {
			return ErrBalanceOverflow
		}
	case BurnMovement:
		if m.From == ZeroAddress {
			return ErrInvalidAddress
		}
		if l.balanceLocked(m.From).Lt(m.Amount) {
			return ErrInsufficientBalance
		}
	case TransferMovement:
		if m.From == ZeroAddress || m.To == ZeroAddress {
			return ErrInvalidAddress
		}
		if l.balanceLocked(m.From).Lt(m.Amount) {
			return ErrInsufficientBalance
		}
		if _, overflow := new(uint256.Int).AddOverflow(l.balanceLocked(m.To), m.Amount); overflow {
			return ErrBalanceOverflow
		}
	}
	return nil
}

// applyLocked mutates balances and total supply. The movement must already
// be validated; apply cannot fail.
func (l *Ledger) applyLocked(m Movement) {
	switch m.Kind {
	case MintMovement:
		l.credit(m.To, m.Amount)
		l.total = new(uint256.Int).Add(l.total, m.Amount)
	case BurnMovement:
		l.debit(m.From, m.Amount)
		l.total = new(uint256.Int).Sub(l.total, m.Amount)
	case TransferMovement:
		l.debit(m.From, m.Amount)
		l.credit(m.To, m.Amount)
	}
}

func (l *Ledger) credit(addr Address, amount *uint256.Int) {
	l.balances[addr] = new(uint256.Int).Add(l.balanceLocked(addr), amount)
}

func (l *Ledger) debit(addr Address, amount *uint256.Int) {
	next := new(uint256.Int).Sub(l.balanceLocked(addr), amount)
	if next.IsZero() {
		delete(l.balances, addr)
		return
	}
	l.balances[addr] = next
}

func (l *Ledger) balanceLocked(addr Address) *uint256.Int {
	if b, ok := l.balances[addr]; ok {
		return b
	}
	return uint256.NewInt(0)
}

func normalize(amount *uint256.Int) *uint256.Int {
	if amount == nil {
		return uint256.NewInt(0)
	}
	return amount.Clone()
}

// lockedView exposes ledger state to guards while the ledger mutex is held.
type lockedView struct {
	l *Ledger
}

func (v lockedView) TotalSupply() *uint256.Int {
	return v.l.total.Clone()
}

func (v lockedView) BalanceOf(addr Address) *uint256.Int {
	return v.l.balanceLocked(addr).Clone()
}
