package prover

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
)

func TestSupplyWitness(t *testing.T) {
	w, err := SupplyWitness(uint256.NewInt(100), []*uint256.Int{
		uint256.NewInt(10),
		uint256.NewInt(20),
	})
	if err != nil {
		t.Fatalf("witness build failed: %v", err)
	}
	if fs, ok := w.FinalSupply.(*big.Int); !ok || fs.Cmp(big.NewInt(30)) != 0 {
		t.Errorf("expected final supply 30, got %v", w.FinalSupply)
	}

	long := make([]*uint256.Int, TraceLength+1)
	for i := range long {
		long[i] = uint256.NewInt(1)
	}
	if _, err := SupplyWitness(uint256.NewInt(100), long); err == nil {
		t.Error("expected error for trace longer than circuit")
	}
}

func TestSupplyCapProof(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping proof generation in short mode")
	}

	p := NewProver()
	if err := p.Register("supply-cap", &SupplyCapCircuit{}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	cc, ok := p.Circuit("supply-cap")
	if !ok {
		t.Fatal("circuit not found after registration")
	}
	t.Logf("supply-cap circuit: %d constraints", cc.Constraints)

	t.Run("ValidTrace", func(t *testing.T) {
		w, err := SupplyWitness(uint256.NewInt(1000), []*uint256.Int{
			uint256.NewInt(400),
			uint256.NewInt(300),
			uint256.NewInt(300),
		})
		if err != nil {
			t.Fatalf("witness build failed: %v", err)
		}

		proof, err := p.Prove("supply-cap", w)
		if err != nil {
			t.Fatalf("prove failed: %v", err)
		}
		if err := p.Verify(proof); err != nil {
			t.Errorf("verify failed: %v", err)
		}
	})

	t.Run("BreachingTrace", func(t *testing.T) {
		w := &SupplyCapCircuit{
			Cap:         1000,
			FinalSupply: 1100,
		}
		for i := range w.Amounts {
			w.Amounts[i] = 0
		}
		w.Amounts[0] = 1100

		if _, err := p.Prove("supply-cap", w); err == nil {
			t.Error("expected proof generation to fail for breaching trace")
		}
	})

	t.Run("WrongFinalSupply", func(t *testing.T) {
		w, err := SupplyWitness(uint256.NewInt(1000), []*uint256.Int{uint256.NewInt(10)})
		if err != nil {
			t.Fatalf("witness build failed: %v", err)
		}
		w.FinalSupply = 11

		if _, err := p.Prove("supply-cap", w); err == nil {
			t.Error("expected proof generation to fail for wrong final supply")
		}
	})
}
