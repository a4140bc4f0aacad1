package prover

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/holiman/uint256"
)

// TraceLength is the fixed number of mint steps a circuit instance
// covers. Shorter traces are zero-padded; longer traces need chunking.
const TraceLength = 16

// SupplyCapCircuit proves that a mint trace never breaches the supply
// cap: every running prefix sum of the (private) per-step amounts stays
// at or below the (public) cap, and the final prefix sum equals the
// (public) final supply.
type SupplyCapCircuit struct {
	Cap         frontend.Variable `gnark:",public"`
	FinalSupply frontend.Variable `gnark:",public"`

	// Amounts are the per-step mint amounts, zero-padded to TraceLength.
	Amounts [TraceLength]frontend.Variable
}

// Define declares the circuit constraints.
func (c *SupplyCapCircuit) Define(api frontend.API) error {
	sum := frontend.Variable(0)
	for i := 0; i < TraceLength; i++ {
		sum = api.Add(sum, c.Amounts[i])
		api.AssertIsLessOrEqual(sum, c.Cap)
	}
	api.AssertIsEqual(sum, c.FinalSupply)
	return nil
}

// SupplyWitness builds a full assignment for SupplyCapCircuit from a cap
// and a mint trace. The final supply is derived from the trace.
func SupplyWitness(limit *uint256.Int, amounts []*uint256.Int) (*SupplyCapCircuit, error) {
	if len(amounts) > TraceLength {
		return nil, fmt.Errorf("prover: trace of %d mints exceeds circuit length %d", len(amounts), TraceLength)
	}

	w := &SupplyCapCircuit{Cap: limit.ToBig()}
	total := new(uint256.Int)
	for i := 0; i < TraceLength; i++ {
		if i < len(amounts) {
			total.Add(total, amounts[i])
			w.Amounts[i] = amounts[i].ToBig()
		} else {
			w.Amounts[i] = 0
		}
	}
	w.FinalSupply = total.ToBig()
	return w, nil
}
