package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/captoken/ledger"
)

func owner(args []string) error {
	fs := flag.NewFlagSet("owner", flag.ExitOnError)
	db := fs.String("db", "captoken.db", "Journal database file")
	stream := fs.String("stream", "", "Journal stream")
	caller := fs.String("caller", "", "Caller identity (required for --to)")
	to := fs.String("to", "", "Transfer ownership to this identity")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: captoken owner [options]

Show the current owner, or transfer ownership with --to.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  captoken owner
  captoken owner --caller alice --to bob
`)
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

	if *to == "" {
		fmt.Println(p.Owner())
		return nil
	}

	if err := p.TransferOwnership(ctx, ledger.Address(*caller), ledger.Address(*to)); err != nil {
		return err
	}
	logger.Info().Str("owner", *to).Msg("ownership transferred")
	return nil
}
