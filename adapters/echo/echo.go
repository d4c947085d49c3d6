// Package ovlecho provides an Echo-based development bridge for ovlkit
// controllers: a plain HTTP stand-in for the in-process string bridge, so a
// host process (or curl) can drive the overlay lifecycle and watch its
// events without embedding a real surface.
//
// Mount the bridge and wire it as the controller's sink:
//
//	e := echo.New()
//	bridge := ovlecho.NewBridge()
//	ctrl := ovlkit.NewController(bridge)
//	bridge.Mount(e, ctrl)
//
// Routes (under the configured path prefix, default /overlay):
//
//	POST /overlay/in      one wire envelope per request body
//	POST /overlay/ready   readiness handshake (normally the surface's job)
//	POST /overlay/reset   session reset
//	GET  /overlay/events  outbound envelopes as an SSE stream
//	GET  /overlay/state   JSON snapshot of every component instance
package ovlecho

import (
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/ovlkit/ovlkit"
)

// Option configures the bridge.
type Option func(*Bridge)

// WithPath sets the URL path prefix for bridge routes. Defaults to "/overlay".
func WithPath(path string) Option {
	return func(b *Bridge) { b.path = path }
}

// WithSubscriberBuffer sets the per-subscriber event buffer. A subscriber
// whose buffer is full misses events rather than stalling the session
// (latency over completeness - the live overlay must never block on a slow
// observer). Defaults to 16.
func WithSubscriberBuffer(n int) Option {
	return func(b *Bridge) { b.buffer = n }
}

// Bridge ferries wire envelopes between HTTP clients and a controller.
// It implements ovlkit.Sink for the outbound direction.
type Bridge struct {
	mu     sync.Mutex
	path   string
	buffer int
	subs   map[chan string]struct{}
}

// NewBridge creates an unmounted bridge.
func NewBridge(opts ...Option) *Bridge {
	b := &Bridge{
		path:   "/overlay",
		buffer: 16,
		subs:   make(map[chan string]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Send fans one outbound wire envelope out to every connected event stream.
// Full subscribers are skipped, never waited on.
func (b *Bridge) Send(wire string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- wire:
		default:
		}
	}
	return nil
}

// Mount registers the bridge routes on an Echo instance.
func (b *Bridge) Mount(e *echo.Echo, ctrl *ovlkit.Controller) {
	e.POST(b.path+"/in", b.handleIn(ctrl))
	e.POST(b.path+"/ready", func(c echo.Context) error {
		ctrl.Ready()
		return c.NoContent(http.StatusNoContent)
	})
	e.POST(b.path+"/reset", func(c echo.Context) error {
		ctrl.Reset()
		return c.NoContent(http.StatusNoContent)
	})
	e.GET(b.path+"/events", b.handleEvents)
	e.GET(b.path+"/state", func(c echo.Context) error {
		return c.JSON(http.StatusOK, ctrl.Snapshot())
	})
}

// handleIn accepts one wire envelope per request. The protocol itself drops
// bad input silently toward the host; the dev bridge additionally maps the
// drop reason onto a status code because HTTP gives us a response channel
// for free, which makes the bridge much nicer to poke at with curl.
func (b *Bridge) handleIn(ctrl *ovlkit.Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return c.String(http.StatusBadRequest, "ovlecho: unreadable body")
		}
		if err := ctrl.HandleWire(string(body)); err != nil {
			switch {
			case ovlkit.IsMalformed(err):
				return c.String(http.StatusBadRequest, err.Error())
			case ovlkit.IsUnknownComponent(err), ovlkit.IsInvalidPayload(err), ovlkit.IsPinned(err):
				return c.String(http.StatusUnprocessableEntity, err.Error())
			default:
				return c.String(http.StatusInternalServerError, err.Error())
			}
		}
		return c.NoContent(http.StatusAccepted)
	}
}

// handleEvents streams outbound envelopes as server-sent events until the
// client disconnects.
func (b *Bridge) handleEvents(c echo.Context) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-store")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ch := b.subscribe()
	defer b.unsubscribe(ch)

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case wire := <-ch:
			if _, err := fmt.Fprintf(res, "data: %s\n\n", wire); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

func (b *Bridge) subscribe() chan string {
	ch := make(chan string, b.buffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Bridge) unsubscribe(ch chan string) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
}

// Render writes a templ component to the Echo response. Used by demo
// surfaces built on this bridge:
//
//	func handler(c echo.Context) error {
//	    return ovlecho.Render(c, overlayPage(ctrl.Snapshot()))
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
