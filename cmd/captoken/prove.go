package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/captoken/prover"
	"github.com/pflow-xyz/captoken/token"
)

func prove(args []string) error {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	db := fs.String("db", "captoken.db", "Journal database file")
	stream := fs.String("stream", "", "Journal stream")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: captoken prove [options]

Generate and verify a Groth16 proof that the journaled mint trace never
breaches the supply cap. The cap and the total minted amount are public;
the individual mint amounts stay private.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	p, store, err := openPolicy(ctx, *db, *stream)
	if err != nil {
		return err
	}
	defer store.Close()

	amounts, err := token.MintTrace(ctx, store, p.Stream())
	if err != nil {
		return err
	}
	witness, err := prover.SupplyWitness(p.MaxSupply(), amounts)
	if err != nil {
		return err
	}

	totalMinted := new(uint256.Int)
	for _, a := range amounts {
		totalMinted.Add(totalMinted, a)
	}

	pv := prover.NewProver()
	start := time.Now()
	if err := pv.Register("supply-cap", &prover.SupplyCapCircuit{}); err != nil {
		return err
	}
	cc, _ := pv.Circuit("supply-cap")
	logger.Info().
		Int("constraints", cc.Constraints).
		Dur("elapsed", time.Since(start)).
		Msg("circuit compiled")

	start = time.Now()
	proof, err := pv.Prove("supply-cap", witness)
	if err != nil {
		return err
	}
	if err := pv.Verify(proof); err != nil {
		return err
	}
	logger.Info().
		Int("mints", len(amounts)).
		Str("cap", p.MaxSupply().Dec()).
		Str("total_minted", totalMinted.Dec()).
		Dur("elapsed", time.Since(start)).
		Msg("supply cap proof verified")
	return nil
}
