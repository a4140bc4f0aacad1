package token

import (
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/captoken/ledger"
)

// SupplyCapGuard bounds the total supply by an immutable maximum.
// Only mints are inspected; burns and transfers never raise supply. The
// addition is overflow-checked and a wrap is treated as cap-exceeded, so
// the guard fails safe on any uint256 overflow.
func SupplyCapGuard(max *uint256.Int) ledger.Guard {
	limit := max.Clone()
	return ledger.Guard{
		Name: "supply-cap",
		Check: func(v ledger.View, m ledger.Movement) error {
			if m.Kind != ledger.MintMovement {
				return nil
			}
			next, overflow := new(uint256.Int).AddOverflow(v.TotalSupply(), m.Amount)
			if overflow || next.Gt(limit) {
				return ErrSupplyCapExceeded
			}
			return nil
		},
	}
}
