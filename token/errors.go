package token

import "errors"

var (
	// Construction errors
	ErrInvalidConfig = errors.New("token: invalid configuration")

	// Mint errors
	ErrSupplyCapExceeded = errors.New("token: supply cap exceeded")

	// Journal errors
	ErrCorruptJournal = errors.New("token: corrupt journal")
)
