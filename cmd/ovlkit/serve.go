package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ovlkit/ovlkit"
	ovlecho "github.com/ovlkit/ovlkit/adapters/echo"
)

// runServe hosts the HTTP dev bridge: POST envelopes to /overlay/in, watch
// outbound events on /overlay/events, inspect state at /overlay/state.
func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", ":8080", "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	bridge := ovlecho.NewBridge()
	ctrl := ovlkit.NewController(bridge, ovlkit.WithLogger(logger))
	bridge.Mount(e, ctrl)

	logger.Info("dev bridge listening", "addr", *addr)
	return e.Start(*addr)
}
