package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/captoken/eventsource"
	"github.com/pflow-xyz/captoken/ledger"
	"github.com/pflow-xyz/captoken/pause"
	"github.com/pflow-xyz/captoken/token"
)

func initToken(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	db := fs.String("db", "captoken.db", "Journal database file")
	stream := fs.String("stream", "", "Journal stream (defaults to symbol)")
	name := fs.String("name", "", "Token name (required)")
	symbol := fs.String("symbol", "", "Token symbol (required)")
	capFlag := fs.String("cap", "", "Maximum supply (required, > 0)")
	mode := fs.String("pause-mode", "strict", "Redundant pause toggle behavior: strict or idempotent")
	deployer := fs.String("owner", "", "Initial owner identity (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: captoken init [options]

Deploy a token: write the genesis event into the journal database.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  captoken init --name Captoken --symbol CAP --cap 1000000 --owner alice
  captoken init --name Captoken --symbol CAP --cap 21000000 --owner alice --pause-mode idempotent
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	maxSupply, err := parseAmount(*capFlag)
	if err != nil {
		return err
	}
	pauseMode, err := pause.ParseMode(*mode)
	if err != nil {
		return err
	}

	store, err := eventsource.NewSQLiteStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := token.New(context.Background(), ledger.Address(*deployer), token.Config{
		Name:      *name,
		Symbol:    *symbol,
		MaxSupply: maxSupply,
		PauseMode: pauseMode,
		Journal:   store,
		Stream:    *stream,
	})
	if err != nil {
		return err
	}

	logger.Info().
		Str("db", *db).
		Str("symbol", p.Symbol()).
		Str("owner", string(p.Owner())).
		Str("max_supply", p.MaxSupply().Dec()).
		Msg("token deployed")
	return nil
}
