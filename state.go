package ovlkit

import (
	"fmt"
	"time"
)

// VisibilityState is the lifecycle position of a component instance.
//
// The cycle is Hidden → Showing → Visible → Hiding → Hidden. Showing and
// Hiding are the animation windows; the lifecycle core passes through them
// within a single transition (the animation itself is a presentation
// concern), so the states observable between commands are Hidden and Visible.
type VisibilityState int

const (
	StateHidden VisibilityState = iota
	StateShowing
	StateVisible
	StateHiding
)

func (s VisibilityState) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateShowing:
		return "showing"
	case StateVisible:
		return "visible"
	case StateHiding:
		return "hiding"
	default:
		return fmt.Sprintf("VisibilityState(%d)", int(s))
	}
}

// Instance is the single live state record for one component kind within a
// session. Exactly one exists per kind for the controller's lifetime; it is
// created at initialization, never destroyed, only transitioned.
//
// Instances are plain data plus transition logic. They own no locking and no
// clock: the Controller serializes every mutation and arms timers on the
// instance's behalf.
type Instance struct {
	Kind    ComponentKind
	State   VisibilityState
	Payload ComponentPayload
	Expiry  time.Time // zero = no pending auto-hide

	// timer is the pending auto-hide countdown, if any. gen increments on
	// every arm/cancel; an expiry callback carrying a stale generation is
	// discarded, which is how an explicit hide wins a race against the
	// countdown firing.
	timer Timer
	gen   uint64
}

// show transitions the instance to Visible with the given payload.
//
// A nil payload re-shows whatever the instance already holds (this is how a
// bare show after updateComponentData surfaces stored data); a non-nil
// payload replaces the previous one entirely, last-write-wins. Validation
// runs against the effective payload before anything mutates: on
// ErrInvalidPayload the instance keeps its prior state, payload and timer.
//
// Timer arming is the caller's job; show only reports the effective payload.
func (in *Instance) show(reg *Registry, payload ComponentPayload) (ComponentPayload, error) {
	effective := payload
	if effective == nil {
		effective = in.Payload
	}
	effective = reg.ApplyDefaults(in.Kind, effective)
	if err := reg.Validate(in.Kind, effective); err != nil {
		return nil, err
	}

	in.cancelTimer()
	// Showing collapses into Visible immediately: the entry animation
	// window is a presentation concern, not a state the core dwells in.
	in.State = StateVisible
	in.Payload = effective
	return effective, nil
}

// hide transitions the instance to Hidden, canceling any pending countdown.
// Reports whether a transition happened: hide on an already-Hidden instance
// is an idempotent no-op and must not produce a duplicate hidden event.
func (in *Instance) hide() bool {
	if in.State == StateHidden {
		return false
	}
	in.cancelTimer()
	in.State = StateHidden
	in.Expiry = time.Time{}
	return true
}

// update merges fields into the payload without touching State or Expiry.
// The merged result is validated as a whole - partial updates must leave the
// payload schema-valid, not just the changed fields. On failure nothing
// changes.
func (in *Instance) update(reg *Registry, fields ComponentPayload) error {
	merged := in.Payload.Clone()
	if merged == nil {
		merged = ComponentPayload{}
	}
	for k, v := range fields {
		merged[k] = v
	}
	merged = reg.ApplyDefaults(in.Kind, merged)
	if err := reg.Validate(in.Kind, merged); err != nil {
		return err
	}
	in.Payload = merged
	return nil
}

// expire completes a countdown. The generation check discards stale firings:
// any hide or re-show since the arm bumped gen, so only the countdown the
// instance still owns may hide it.
func (in *Instance) expire(gen uint64) bool {
	if gen != in.gen || in.State != StateVisible {
		return false
	}
	in.timer = nil
	in.State = StateHidden
	in.Expiry = time.Time{}
	return true
}

// armTimer registers a pending countdown. cancelTimer must have run first
// (show does this); the expiry callback must present the generation current
// at arm time.
func (in *Instance) armTimer(t Timer, expiry time.Time) {
	in.timer = t
	in.Expiry = expiry
}

// cancelTimer atomically cancels any pending countdown by stopping the timer
// and bumping the generation, so an already-fired callback that lost the race
// is discarded when it arrives.
func (in *Instance) cancelTimer() {
	in.gen++
	if in.timer != nil {
		in.timer.Stop()
		in.timer = nil
	}
	in.Expiry = time.Time{}
}
