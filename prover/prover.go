// Package prover generates Groth16 proofs that a recorded mint trace
// respects an immutable supply cap, without revealing the individual
// mint amounts. The cap and the final supply are the only public inputs.
//
// Values must fit the BN254 scalar field (< ~2^253); traces written by a
// capped policy satisfy this for any realistic cap.
package prover

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// Prover manages circuit compilation, setup, and proof generation.
type Prover struct {
	mu       sync.RWMutex
	circuits map[string]*CompiledCircuit
	curve    ecc.ID
}

// CompiledCircuit holds a compiled constraint system and its keys.
type CompiledCircuit struct {
	Name         string
	CS           constraint.ConstraintSystem
	ProvingKey   groth16.ProvingKey
	VerifyingKey groth16.VerifyingKey
	Constraints  int
}

// Proof pairs a Groth16 proof with its public witness.
type Proof struct {
	CircuitName string
	Proof       groth16.Proof
	Public      witness.Witness
}

// NewProver creates a prover on BN254.
func NewProver() *Prover {
	return &Prover{
		circuits: make(map[string]*CompiledCircuit),
		curve:    ecc.BN254,
	}
}

// Register compiles a circuit and runs setup.
// Setup here is single-party; a production deployment would use a
// ceremony.
func (p *Prover) Register(name string, circuit frontend.Circuit) error {
	cs, err := frontend.Compile(p.curve.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return fmt.Errorf("circuit compilation failed: %w", err)
	}
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.circuits[name] = &CompiledCircuit{
		Name:         name,
		CS:           cs,
		ProvingKey:   pk,
		VerifyingKey: vk,
		Constraints:  cs.GetNbConstraints(),
	}
	return nil
}

// Circuit returns a compiled circuit by name.
func (p *Prover) Circuit(name string) (*CompiledCircuit, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cc, ok := p.circuits[name]
	return cc, ok
}

// Prove generates a proof for the given assignment. An assignment that
// does not satisfy the circuit fails here.
func (p *Prover) Prove(circuitName string, assignment frontend.Circuit) (*Proof, error) {
	cc, ok := p.Circuit(circuitName)
	if !ok {
		return nil, fmt.Errorf("circuit %q not registered", circuitName)
	}

	w, err := frontend.NewWitness(assignment, p.curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("witness creation failed: %w", err)
	}
	proof, err := groth16.Prove(cc.CS, cc.ProvingKey, w)
	if err != nil {
		return nil, fmt.Errorf("proof generation failed: %w", err)
	}
	public, err := w.Public()
	if err != nil {
		return nil, fmt.Errorf("public witness extraction failed: %w", err)
	}

	return &Proof{CircuitName: circuitName, Proof: proof, Public: public}, nil
}

// Verify checks a proof against the registered verifying key.
func (p *Prover) Verify(proof *Proof) error {
	cc, ok := p.Circuit(proof.CircuitName)
	if !ok {
		return fmt.Errorf("circuit %q not registered", proof.CircuitName)
	}
	return groth16.Verify(proof.Proof, cc.VerifyingKey, proof.Public)
}
