package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/pflow-xyz/captoken/eventsource"
	"github.com/pflow-xyz/captoken/token"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Logger()

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	run := func(fn func([]string) error) {
		if err := fn(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	switch command {
	case "init":
		run(initToken)
	case "info":
		run(info)
	case "mint":
		run(mint)
	case "burn":
		run(burn)
	case "transfer":
		run(transfer)
	case "pause":
		run(pauseToken)
	case "unpause":
		run(unpauseToken)
	case "owner":
		run(owner)
	case "events":
		run(events)
	case "prove":
		run(prove)
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("captoken version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`captoken - fixed-cap pausable token ledger

Usage:
  captoken <command> [options]

Commands:
  init       Deploy a token into a journal database
  info       Show token configuration and current state
  mint       Mint tokens to a holder (owner only)
  burn       Burn tokens from a holder
  transfer   Move tokens between holders
  pause      Pause all balance movements (owner only)
  unpause    Resume balance movements (owner only)
  owner      Show or transfer ownership
  events     List the journal event stream
  prove      Prove the mint trace respects the supply cap
  help       Show this help
  version    Show version

Run 'captoken <command> -h' for command options.`)
}

// openPolicy restores the policy from the journal database. An empty
// stream is resolved when the database holds exactly one stream.
func openPolicy(ctx context.Context, db, stream string) (*token.Policy, *eventsource.SQLiteStore, error) {
	store, err := eventsource.NewSQLiteStore(db)
	if err != nil {
		return nil, nil, err
	}
	if stream == "" {
		streams, err := store.Streams(ctx)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		if len(streams) != 1 {
			store.Close()
			return nil, nil, fmt.Errorf("%s holds %d streams, pick one with --stream", db, len(streams))
		}
		stream = streams[0]
	}
	p, err := token.Restore(ctx, store, stream)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("restore %s from %s: %w", stream, db, err)
	}
	return p, store, nil
}

func parseAmount(s string) (*uint256.Int, error) {
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("bad amount %q: %w", s, err)
	}
	return amount, nil
}
