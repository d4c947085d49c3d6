// Package ovlkit implements the lifecycle core for transient, data-driven
// overlay components rendered on top of a live streaming surface and
// controlled by a remote host over an asynchronous message channel.
//
// The host decides what to show, with what data, and for how long; the
// surface renders it and reports user interactions and lifecycle events
// back. ovlkit is the part with real state and failure handling: the wire
// protocol, the per-component visibility state machine, and the controller
// that keeps both sides consistent despite out-of-order or malformed
// messages. Rendering, animation, layout and the bridging primitive itself
// are external collaborators reached through small interfaces.
//
// # Core Concepts
//
// Envelopes are the wire unit: a {type, data} pair from a closed set of
// event types, serialized by a Codec (JSON by default, msgpack for binary
// bridges):
//
//	{"type":"showComponent","data":{"component":"itemCard","duration":10000,"data":{...}}}
//
// The Registry is the static catalog of component kinds (brandFollowCard,
// itemCard, rewardBadge, and the pinned exploreButton) and validates each
// payload against its kind's schema exactly once, at the boundary.
//
// Each kind has exactly one Instance for the session's lifetime, cycling
// through Hidden → Showing → Visible → Hiding → Hidden. A show with a
// positive duration arms an auto-hide countdown; re-arming atomically
// cancels the previous countdown, and an explicit hide always beats a
// racing expiry.
//
// # The Controller
//
// The Controller is the single entry point on the surface side:
//
//	ctrl := ovlkit.NewController(sink)
//	go transport.Deliver(ctrl.HandleWire) // host → surface
//	ctrl.Ready()                          // after the surface loads
//
// All mutation is serialized through one critical section: bridge
// deliveries, timer expiries and click emissions may arrive on any
// goroutine, but no two commands are ever processed concurrently and no
// instance is ever observed mid-transition.
//
// Commands arriving before Ready are buffered in arrival order and flushed
// atomically right after the webViewReady handshake, which is emitted
// exactly once per session.
//
// # Failure Model
//
// Every failure is local and non-fatal. Malformed wire data, unknown
// components and schema violations drop the offending command with a
// diagnostic and no partial state change; unknown event types drop silently
// because host and surface versions drift. The session never crashes on
// input.
//
// # Testing
//
// The package ships a deterministic harness: FakeClock drives countdowns
// without real time, RecordingSink captures emissions, and Harness wires
// both to a controller:
//
//	h := ovlkit.NewHarness()
//	h.Ready()
//	h.Show("itemCard", itemData, 10000)
//	h.Clock.Advance(10 * time.Second)
//	// h.Sink now holds componentShown then componentHidden
package ovlkit
