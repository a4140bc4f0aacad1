package ledger

import "errors"

var (
	// Address validation errors
	ErrInvalidAddress = errors.New("ledger: zero address not allowed here")

	// Balance movement errors
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")
	ErrSupplyOverflow      = errors.New("ledger: total supply overflow")
	ErrBalanceOverflow     = errors.New("ledger: balance overflow")
)
