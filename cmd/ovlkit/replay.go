package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ovlkit/ovlkit"
)

// runReplay feeds wire envelopes through a fresh controller session and
// prints every outbound envelope to stdout. Blank lines and lines starting
// with # are skipped, so captured session logs can be annotated.
func runReplay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	sleep := fs.Int("sleep", 0, "pause between envelopes in milliseconds")
	linger := fs.Int("linger", 0, "wait for pending timers before exiting, in milliseconds")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	sink := ovlkit.SinkFunc(func(wire string) error {
		_, err := fmt.Println(wire)
		return err
	})
	ctrl := ovlkit.NewController(sink, ovlkit.WithLogger(logger))
	defer ctrl.Close()

	ctrl.Ready()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		wire := strings.TrimSpace(scanner.Text())
		if wire == "" || strings.HasPrefix(wire, "#") {
			continue
		}
		if err := ctrl.HandleWire(wire); err != nil {
			// Dropped commands are part of the protocol, not a replay
			// failure; report and continue like a live session would.
			fmt.Fprintf(os.Stderr, "line %d dropped: %v\n", line, err)
		}
		if *sleep > 0 {
			time.Sleep(time.Duration(*sleep) * time.Millisecond)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if *linger > 0 {
		time.Sleep(time.Duration(*linger) * time.Millisecond)
	}
	return nil
}
