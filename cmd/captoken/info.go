package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func info(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	db := fs.String("db", "captoken.db", "Journal database file")
	stream := fs.String("stream", "", "Journal stream")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: captoken info [options]

Show token configuration and current state.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	p, store, err := openPolicy(context.Background(), *db, *stream)
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Printf("Name:         %s\n", p.Name())
	fmt.Printf("Symbol:       %s\n", p.Symbol())
	fmt.Printf("Max supply:   %s\n", p.MaxSupply().Dec())
	fmt.Printf("Total supply: %s\n", p.TotalSupply().Dec())
	fmt.Printf("Holders:      %d\n", p.Holders())
	fmt.Printf("Owner:        %s\n", p.Owner())
	fmt.Printf("Paused:       %v\n", p.Paused())
	fmt.Printf("Pause mode:   %s\n", p.PauseMode())
	return nil
}
