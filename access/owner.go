// Package access associates a single privileged owner identity with a
// deployed instance and provides the authorization check used as a
// precondition on sensitive operations.
package access

import (
	"errors"
	"sync"

	"github.com/pflow-xyz/captoken/ledger"
)

var (
	ErrUnauthorized = errors.New("access: caller is not the owner")
	ErrInvalidOwner = errors.New("access: owner is the zero address")
)

// Controller tracks the current owner.
type Controller struct {
	mu         sync.RWMutex
	owner      ledger.Address
	onTransfer func(previous, next ledger.Address)
}

// NewController creates a controller owned by the given identity.
func NewController(owner ledger.Address) (*Controller, error) {
	if owner == ledger.ZeroAddress {
		return nil, ErrInvalidOwner
	}
	return &Controller{owner: owner}, nil
}

// Owner returns the current owner.
func (c *Controller) Owner() ledger.Address {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.owner
}

// Require returns ErrUnauthorized unless the caller is the current owner.
func (c *Controller) Require(caller ledger.Address) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if caller != c.owner {
		return ErrUnauthorized
	}
	return nil
}

// OnTransfer registers a callback invoked after every ownership change.
func (c *Controller) OnTransfer(fn func(previous, next ledger.Address)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTransfer = fn
}

// TransferOwnership reassigns the owner. Only the current owner may call,
// and the new owner must not be the zero address.
func (c *Controller) TransferOwnership(caller, next ledger.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if caller != c.owner {
		return ErrUnauthorized
	}
	if next == ledger.ZeroAddress {
		return ErrInvalidOwner
	}

	previous := c.owner
	c.owner = next
	if c.onTransfer != nil {
		c.onTransfer(previous, next)
	}
	return nil
}
