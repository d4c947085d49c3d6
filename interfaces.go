package ovlkit

// Sink is the outbound half of the bridge: every envelope the controller
// emits (lifecycle events, user clicks, the readiness handshake) is encoded
// and handed to the Sink as a wire string.
//
// Implementations are transport adapters - an in-process JS bridge, the dev
// HTTP bridge in adapters/echo, or a recorder in tests. Send may be called
// from the goroutine processing any command; implementations that fan out to
// slow consumers should not block (drop or buffer instead), since a stalled
// Sink stalls the whole session.
type Sink interface {
	Send(wire string) error
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(wire string) error

func (f SinkFunc) Send(wire string) error { return f(wire) }

// Inbound is the inbound half of the bridge as transport adapters see it:
// they ferry wire strings from the host and hand each one to HandleWire.
// *Controller implements this.
type Inbound interface {
	HandleWire(wire string) error
}
