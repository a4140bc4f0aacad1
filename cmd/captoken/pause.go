package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/captoken/ledger"
)

func pauseToken(args []string) error {
	return togglePause(args, "pause", true)
}

func unpauseToken(args []string) error {
	return togglePause(args, "unpause", false)
}

func togglePause(args []string, name string, engage bool) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	db := fs.String("db", "captoken.db", "Journal database file")
	stream := fs.String("stream", "", "Journal stream")
	caller := fs.String("caller", "", "Caller identity (must be the owner)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: captoken %s [options]

Options:
`, name)
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

	if engage {
		err = p.Pause(ctx, ledger.Address(*caller))
	} else {
		err = p.Unpause(ctx, ledger.Address(*caller))
	}
	if err != nil {
		return err
	}

	logger.Info().Bool("paused", p.Paused()).Msg(name + "d")
	return nil
}
