package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "replay":
		if err := runReplay(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := runServe(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("ovlkit version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ovlkit - overlay component protocol tooling

Usage:
  ovlkit <command> [arguments]

Commands:
  replay [file]         Feed wire envelopes (one per line) through a controller
                        and print everything it emits. Reads stdin without a file.
  serve                 Run the HTTP dev bridge
  version               Print version
  help                  Show this help

Options for replay:
  -sleep <ms>           Pause between envelopes (default 0)
  -linger <ms>          Wait for pending auto-hide timers before exiting (default 0)

Options for serve:
  -addr <addr>          Listen address (default :8080)

Examples:
  ovlkit replay session.log              Replay a captured host session
  echo '{"type":"hideComponent","data":{"component":"itemCard"}}' | ovlkit replay
  ovlkit serve -addr :9090`)
}
