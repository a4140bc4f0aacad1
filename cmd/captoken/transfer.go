package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/captoken/ledger"
)

func transfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	db := fs.String("db", "captoken.db", "Journal database file")
	stream := fs.String("stream", "", "Journal stream")
	from := fs.String("from", "", "Sender identity")
	to := fs.String("to", "", "Recipient identity")
	amount := fs.String("amount", "", "Amount to transfer")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: captoken transfer [options]

Move tokens between holders. Blocked while paused.

Options:
`)
		fs.PrintDefaults()
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

	if err := p.Transfer(ctx, ledger.Address(*from), ledger.Address(*to), value); err != nil {
		return err
	}

	logger.Info().
		Str("from", *from).
		Str("to", *to).
		Str("amount", value.Dec()).
		Msg("transferred")
	return nil
}

func burn(args []string) error {
	fs := flag.NewFlagSet("burn", flag.ExitOnError)
	db := fs.String("db", "captoken.db", "Journal database file")
	stream := fs.String("stream", "", "Journal stream")
	from := fs.String("from", "", "Holder to debit")
	amount := fs.String("amount", "", "Amount to burn")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: captoken burn [options]

Burn tokens from a holder. Blocked while paused.

Options:
`)
		fs.PrintDefaults()
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

	if err := p.Burn(ctx, ledger.Address(*from), value); err != nil {
		return err
	}

	logger.Info().
		Str("from", *from).
		Str("amount", value.Dec()).
		Str("total_supply", p.TotalSupply().Dec()).
		Msg("burned")
	return nil
}
