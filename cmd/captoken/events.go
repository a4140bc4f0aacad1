package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pflow-xyz/captoken/eventsource"
)

func events(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	db := fs.String("db", "captoken.db", "Journal database file")
	stream := fs.String("stream", "", "Journal stream")
	from := fs.Int("from", 0, "First version to show")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: captoken events [options]

List the journal event stream in version order.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	store, err := eventsource.NewSQLiteStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	name := *stream
	if name == "" {
		streams, err := store.Streams(ctx)
		if err != nil {
			return err
		}
		if len(streams) != 1 {
			return fmt.Errorf("%s holds %d streams, pick one with --stream", *db, len(streams))
		}
		name = streams[0]
	}

	list, err := store.Read(ctx, name, *from)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("stream %s has no events from version %d", name, *from)
	}

	for _, e := range list {
		fmt.Printf("%4d  %-22s  %s  %s\n",
			e.Version, e.Type, e.Timestamp.Format(time.RFC3339), string(e.Data))
	}
	return nil
}
