package ovlkit

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Controller is the single entry point of the overlay lifecycle core. It
// translates decoded envelopes into state machine transitions and the
// inverse: transition-driven and UI-driven events into outbound envelopes.
//
// One Controller owns one session: a fixed table of component instances
// (one per kind, created here, never destroyed), the readiness handshake,
// and every pending auto-hide countdown.
//
// All state mutation is serialized through a single mutex - the transport
// may deliver from any goroutine, timer callbacks fire on their own
// goroutines, and the rendering layer is not safe for concurrent mutation,
// so every path marshals through the same critical section before touching
// an instance. No two commands are ever processed concurrently.
type Controller struct {
	mu        sync.Mutex
	registry  *Registry
	codec     Codec
	sink      Sink
	clock     Clock
	log       *slog.Logger
	baseLog   *slog.Logger
	session   string
	instances map[ComponentKind]*Instance
	ready     bool
	pending   []Envelope
	closed    bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithCodec overrides the wire codec (default JSONCodec).
func WithCodec(c Codec) Option {
	return func(ctl *Controller) { ctl.codec = c }
}

// WithClock overrides the clock. Tests use this with FakeClock to drive
// auto-hide countdowns deterministically.
func WithClock(c Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithLogger sets the diagnostic logger (default slog.Default()).
// Dropped commands are observable only here - the host has no synchronous
// response channel for inbound commands.
func WithLogger(l *slog.Logger) Option {
	return func(ctl *Controller) { ctl.log = l }
}

// NewController creates a session controller that emits outbound envelopes
// through sink.
//
// The controller starts not-ready: commands arriving before Ready() are
// buffered in arrival order and flushed atomically once the surface reports
// readiness. The exploreButton instance is pinned Visible from the start.
func NewController(sink Sink, opts ...Option) *Controller {
	ctl := &Controller{
		registry: NewRegistry(),
		codec:    JSONCodec(),
		sink:     sink,
		clock:    realClock{},
		session:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(ctl)
	}
	if ctl.log == nil {
		ctl.log = slog.Default()
	}
	ctl.baseLog = ctl.log
	ctl.log = ctl.baseLog.With("session", ctl.session)
	ctl.instances = newInstanceTable(ctl.registry)
	return ctl
}

func newInstanceTable(reg *Registry) map[ComponentKind]*Instance {
	instances := make(map[ComponentKind]*Instance, len(reg.Kinds()))
	for _, kind := range reg.Kinds() {
		in := &Instance{Kind: kind, State: StateHidden}
		if reg.Pinned(kind) {
			in.State = StateVisible
			in.Payload = ComponentPayload{}
		}
		instances[kind] = in
	}
	return instances
}

// Registry returns the component catalog this session validates against.
func (c *Controller) Registry() *Registry { return c.registry }

// Session returns the session identifier attached to every diagnostic.
func (c *Controller) Session() string { return c.session }

// HandleWire decodes and dispatches one inbound wire string.
//
// The returned error reports why a command was dropped; it is diagnostic
// only. No inbound message is ever fatal: malformed wire data, unknown
// components and schema violations are dropped with the session intact and
// no partial state change.
func (c *Controller) HandleWire(wire string) error {
	env, err := c.codec.Decode(wire)
	if err != nil {
		err = wrapEncodingError(err)
		c.log.Warn("dropping malformed envelope", "error", err)
		return err
	}
	return c.Handle(env)
}

// Handle dispatches one decoded envelope.
//
// Unknown event types are dropped silently (debug log only): host and
// surface versions drift, and a newer peer's events must never crash an
// older one. Commands for unknown components or with invalid payloads are
// dropped with a diagnostic.
func (c *Controller) Handle(env Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatchLocked(env)
}

func (c *Controller) dispatchLocked(env Envelope) error {
	if c.closed {
		return ErrClosed
	}
	switch env.Type {
	case EventShowComponent, EventHideComponent, EventUpdateComponentData:
		// Commands that arrive before the surface is ready are buffered
		// in arrival order and replayed by Ready.
		if !c.ready {
			c.pending = append(c.pending, env)
			return nil
		}
	default:
		// Expected during version skew; not worth a warning.
		c.log.Debug("dropping unhandled event type", "type", string(env.Type))
		return nil
	}

	inst, err := c.resolveLocked(env.Data)
	if err != nil {
		c.log.Warn("dropping command", "type", string(env.Type), "error", err)
		return err
	}

	switch env.Type {
	case EventShowComponent:
		return c.showLocked(inst, env.Data)
	case EventHideComponent:
		c.hideLocked(inst)
	case EventUpdateComponentData:
		return c.updateLocked(inst, env.Data)
	}
	return nil
}

// resolveLocked extracts and checks the component reference every command
// must carry. Commands against pinned kinds are rejected here: exploreButton
// has no inbound control messages.
func (c *Controller) resolveLocked(data map[string]any) (*Instance, error) {
	name, ok := data["component"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: missing component", ErrMalformedEnvelope)
	}
	if !c.registry.IsKnownKind(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}
	kind := ComponentKind(name)
	if c.registry.Pinned(kind) {
		return nil, fmt.Errorf("%w: %s", ErrComponentPinned, kind)
	}
	return c.instances[kind], nil
}

func (c *Controller) showLocked(inst *Instance, data map[string]any) error {
	duration, err := durationOf(data)
	if err != nil {
		c.log.Warn("dropping show", "component", string(inst.Kind), "error", err)
		return err
	}

	var payload ComponentPayload
	if raw, ok := data["data"]; ok {
		fields, ok := raw.(map[string]any)
		if !ok {
			err := fmt.Errorf("%w: data must be an object", ErrMalformedEnvelope)
			c.log.Warn("dropping show", "component", string(inst.Kind), "error", err)
			return err
		}
		payload = ComponentPayload(fields)
	}

	if _, err := inst.show(c.registry, payload); err != nil {
		c.log.Warn("dropping show", "component", string(inst.Kind), "error", err)
		return err
	}

	// Arming implicitly canceled the previous countdown (show bumps the
	// generation), so a re-show always resets the timer: the prior one can
	// no longer fire.
	if duration > 0 {
		gen := inst.gen
		kind := inst.Kind
		t := c.clock.AfterFunc(duration, func() { c.expireTimer(kind, gen) })
		inst.armTimer(t, c.clock.Now().Add(duration))
	}

	c.emitLocked(Envelope{
		Type: EventComponentShown,
		Data: map[string]any{"component": string(inst.Kind)},
	})
	return nil
}

func (c *Controller) hideLocked(inst *Instance) {
	// Idempotent: hide on an already-Hidden instance emits nothing.
	if !inst.hide() {
		return
	}
	c.emitLocked(Envelope{
		Type: EventComponentHidden,
		Data: map[string]any{"component": string(inst.Kind)},
	})
}

func (c *Controller) updateLocked(inst *Instance, data map[string]any) error {
	raw, ok := data["data"].(map[string]any)
	if !ok {
		err := fmt.Errorf("%w: missing data", ErrMalformedEnvelope)
		c.log.Warn("dropping update", "component", string(inst.Kind), "error", err)
		return err
	}
	if err := inst.update(c.registry, ComponentPayload(raw)); err != nil {
		c.log.Warn("dropping update", "component", string(inst.Kind), "error", err)
		return err
	}
	// A payload update never changes state: if the instance is Hidden the
	// new fields sit dormant until the next show, and no event is emitted.
	return nil
}

// expireTimer is the auto-hide countdown callback. It runs on the clock's
// goroutine and marshals into the session's critical section; the generation
// check inside Instance.expire discards it if a hide or re-show raced ahead.
func (c *Controller) expireTimer(kind ComponentKind, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	inst := c.instances[kind]
	if !inst.expire(gen) {
		return
	}
	c.emitLocked(Envelope{
		Type: EventComponentHidden,
		Data: map[string]any{"component": string(kind)},
	})
}

// Ready completes the startup handshake. The first call emits webViewReady
// and then replays every buffered command in arrival order within the same
// critical section; later calls are no-ops. This resolves the asynchronous
// startup race between the host (which may send commands immediately) and
// the embedded surface (which takes time to load).
func (c *Controller) Ready() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready || c.closed {
		return
	}
	c.ready = true
	c.emitLocked(Envelope{Type: EventWebViewReady, Data: map[string]any{}})

	buffered := c.pending
	c.pending = nil
	for _, env := range buffered {
		// Errors were already logged per command; a bad buffered command
		// must not stop the rest of the replay.
		_ = c.dispatchLocked(env)
	}
}

// Reset returns the session to its initial state after a surface reload:
// every countdown is canceled, every instance returns to Hidden (pinned
// kinds stay Visible), the pending buffer is discarded and a fresh session
// id is issued. The controller becomes not-ready so the reloaded surface
// performs the readiness handshake again. No events are emitted.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	for _, inst := range c.instances {
		inst.cancelTimer()
		if !c.registry.Pinned(inst.Kind) {
			inst.State = StateHidden
			inst.Payload = nil
		}
	}
	c.pending = nil
	c.ready = false
	c.session = uuid.NewString()
	c.log = c.baseLog.With("session", c.session)
	c.log.Info("session reset")
}

// Close ends the session: all countdowns are canceled and every subsequent
// command is dropped with ErrClosed.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	for _, inst := range c.instances {
		inst.cancelTimer()
	}
	c.pending = nil
	c.closed = true
	return nil
}

// InstanceSnapshot is a read-only view of one component instance.
type InstanceSnapshot struct {
	Component string           `json:"component"`
	State     string           `json:"state"`
	Payload   ComponentPayload `json:"payload,omitempty"`
	ExpiresAt *time.Time       `json:"expiresAt,omitempty"`
}

// Snapshot returns the current state of every instance in stable order.
// Used by the debug bridge and the replay CLI; never by the core itself.
func (c *Controller) Snapshot() []InstanceSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]InstanceSnapshot, 0, len(c.instances))
	for _, kind := range c.registry.Kinds() {
		inst := c.instances[kind]
		snap := InstanceSnapshot{
			Component: string(kind),
			State:     inst.State.String(),
			Payload:   inst.Payload.Clone(),
		}
		if !inst.Expiry.IsZero() {
			expiry := inst.Expiry
			snap.ExpiresAt = &expiry
		}
		out = append(out, snap)
	}
	return out
}

// emitLocked encodes and sends one outbound envelope. Encoding is total for
// the envelopes this package builds; a sink failure is logged and swallowed
// because no emission failure may disturb instance state.
func (c *Controller) emitLocked(env Envelope) {
	wire, err := c.codec.Encode(env)
	if err != nil {
		c.log.Error("failed to encode outbound envelope", "type", string(env.Type), "error", err)
		return
	}
	if err := c.sink.Send(wire); err != nil {
		c.log.Warn("outbound send failed", "type", string(env.Type), "error", err)
	}
}

// durationOf reads the auto-hide duration in milliseconds from a show
// command. Missing means 0 (indefinite); negative values are rejected.
// JSON decodes numbers as float64, msgpack as signed or unsigned ints, so
// all of those are accepted.
func durationOf(data map[string]any) (time.Duration, error) {
	raw, ok := data["duration"]
	if !ok {
		return 0, nil
	}
	var ms int64
	switch v := raw.(type) {
	case float64:
		ms = int64(v)
	case int64:
		ms = v
	case uint64:
		ms = int64(v)
	case int:
		ms = int64(v)
	case int8:
		ms = int64(v)
	case int16:
		ms = int64(v)
	case int32:
		ms = int64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: duration: %v", ErrMalformedEnvelope, err)
		}
		ms = n
	default:
		return 0, fmt.Errorf("%w: duration must be a non-negative integer", ErrMalformedEnvelope)
	}
	if ms < 0 {
		return 0, fmt.Errorf("%w: duration must be a non-negative integer", ErrMalformedEnvelope)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
