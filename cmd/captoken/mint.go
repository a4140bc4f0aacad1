package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/captoken/ledger"
)

func mint(args []string) error {
	fs := flag.NewFlagSet("mint", flag.ExitOnError)
	db := fs.String("db", "captoken.db", "Journal database file")
	stream := fs.String("stream", "", "Journal stream")
	caller := fs.String("caller", "", "Caller identity (must be the owner)")
	to := fs.String("to", "", "Recipient identity")
	amount := fs.String("amount", "", "Amount to mint")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: captoken mint [options]

Mint tokens to a holder. Restricted to the owner, blocked while paused,
and bounded by the supply cap.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  captoken mint --caller alice --to bob --amount 100
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	value, err := parseAmount(*amount)
	if err != nil {
		return err
	}

	ctx := context.Background()
	p, store, err := openPolicy(ctx, *db, *stream)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := p.Mint(ctx, ledger.Address(*caller), ledger.Address(*to), value); err != nil {
		return err
	}

	logger.Info().
		Str("to", *to).
		Str("amount", value.Dec()).
		Str("total_supply", p.TotalSupply().Dec()).
		Msg("minted")
	return nil
}
