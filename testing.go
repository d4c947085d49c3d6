package ovlkit

import (
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// FakeClock is a deterministic Clock for tests. Time never moves on its own;
// Advance moves it forward and fires every countdown that comes due, in
// deadline order, on the calling goroutine.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

// NewFakeClock creates a fake clock at a fixed, arbitrary instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, deadline: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d and fires due timers. Callbacks run
// with no clock lock held, so they are free to re-arm timers or call back
// into the controller.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	remaining := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.deadline.After(c.now) {
			due = append(due, t)
		} else if !t.stopped {
			remaining = append(remaining, t)
		}
	}
	c.timers = remaining
	sort.SliceStable(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
	c.mu.Unlock()

	for _, t := range due {
		t.fire()
	}
}

// PendingTimers reports how many countdowns are armed and not yet fired.
func (c *FakeClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

type fakeTimer struct {
	clock    *FakeClock
	deadline time.Time
	f        func()
	stopped  bool
	fired    bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (t *fakeTimer) fire() {
	t.clock.mu.Lock()
	if t.stopped {
		t.clock.mu.Unlock()
		return
	}
	t.fired = true
	t.clock.mu.Unlock()
	t.f()
}

// RecordingSink captures every outbound envelope for assertions, keeping
// both the raw wire strings and their decoded forms.
type RecordingSink struct {
	mu    sync.Mutex
	codec Codec
	wires []string
	envs  []Envelope
}

// NewRecordingSink creates a sink that decodes captured wire strings with
// codec (nil means JSONCodec).
func NewRecordingSink(codec Codec) *RecordingSink {
	if codec == nil {
		codec = JSONCodec()
	}
	return &RecordingSink{codec: codec}
}

func (s *RecordingSink) Send(wire string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wires = append(s.wires, wire)
	if env, err := s.codec.Decode(wire); err == nil {
		s.envs = append(s.envs, env)
	}
	return nil
}

// Envelopes returns the decoded captured envelopes in emission order.
func (s *RecordingSink) Envelopes() []Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Envelope, len(s.envs))
	copy(out, s.envs)
	return out
}

// Wires returns the raw captured wire strings in emission order.
func (s *RecordingSink) Wires() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.wires))
	copy(out, s.wires)
	return out
}

// Types returns just the event types, in emission order.
func (s *RecordingSink) Types() []EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EventType, len(s.envs))
	for i, env := range s.envs {
		out[i] = env.Type
	}
	return out
}

// Count returns how many envelopes were captured.
func (s *RecordingSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.envs)
}

// Last returns the most recent envelope, if any.
func (s *RecordingSink) Last() (Envelope, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.envs) == 0 {
		return Envelope{}, false
	}
	return s.envs[len(s.envs)-1], true
}

// Reset discards everything captured so far.
func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wires = nil
	s.envs = nil
}

// Harness bundles a controller with a fake clock and a recording sink for
// deterministic lifecycle tests. Commands dispatch synchronously and timers
// fire only through Clock.Advance, so every assertion can run immediately
// after the call that should have produced the event.
type Harness struct {
	Controller *Controller
	Clock      *FakeClock
	Sink       *RecordingSink
}

// NewHarness creates a not-ready controller on a fake clock with diagnostics
// discarded. Call Ready to complete the handshake (it clears the sink so
// the webViewReady emission does not pollute assertions).
func NewHarness(opts ...Option) *Harness {
	clock := NewFakeClock()
	sink := NewRecordingSink(nil)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := []Option{WithClock(clock), WithLogger(quiet)}
	ctl := NewController(sink, append(base, opts...)...)
	return &Harness{Controller: ctl, Clock: clock, Sink: sink}
}

// Ready completes the readiness handshake and clears captured events.
func (h *Harness) Ready() {
	h.Controller.Ready()
	h.Sink.Reset()
}

// Show dispatches a showComponent command.
func (h *Harness) Show(component string, data map[string]any, durationMS int) error {
	payload := map[string]any{"component": component, "duration": durationMS}
	if data != nil {
		payload["data"] = data
	}
	return h.Controller.Handle(Envelope{Type: EventShowComponent, Data: payload})
}

// Hide dispatches a hideComponent command.
func (h *Harness) Hide(component string) error {
	return h.Controller.Handle(Envelope{
		Type: EventHideComponent,
		Data: map[string]any{"component": component},
	})
}

// Update dispatches an updateComponentData command.
func (h *Harness) Update(component string, data map[string]any) error {
	return h.Controller.Handle(Envelope{
		Type: EventUpdateComponentData,
		Data: map[string]any{"component": component, "data": data},
	})
}

// State returns the current visibility state of a component instance.
func (h *Harness) State(component string) VisibilityState {
	h.Controller.mu.Lock()
	defer h.Controller.mu.Unlock()
	return h.Controller.instances[ComponentKind(component)].State
}

// Payload returns a copy of the component instance's current payload.
func (h *Harness) Payload(component string) ComponentPayload {
	h.Controller.mu.Lock()
	defer h.Controller.mu.Unlock()
	return h.Controller.instances[ComponentKind(component)].Payload.Clone()
}
