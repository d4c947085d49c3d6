package ovlkit

import (
	"testing"
	"time"
)

func TestFakeClockAdvance(t *testing.T) {
	clock := NewFakeClock()
	var fired []string

	clock.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	clock.AfterFunc(5*time.Millisecond, func() { fired = append(fired, "b") })
	clock.AfterFunc(20*time.Millisecond, func() { fired = append(fired, "c") })

	clock.Advance(10 * time.Millisecond)
	if len(fired) != 2 || fired[0] != "b" || fired[1] != "a" {
		t.Errorf("fired = %v, want [b a] in deadline order", fired)
	}

	clock.Advance(10 * time.Millisecond)
	if len(fired) != 3 || fired[2] != "c" {
		t.Errorf("fired = %v, want [b a c]", fired)
	}
}

func TestFakeClockStop(t *testing.T) {
	clock := NewFakeClock()
	fired := false
	timer := clock.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("Stop on pending timer should report true")
	}
	if timer.Stop() {
		t.Error("second Stop should report false")
	}

	clock.Advance(time.Hour)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestFakeClockCallbackCanRearm(t *testing.T) {
	clock := NewFakeClock()
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 3 {
			clock.AfterFunc(time.Second, tick)
		}
	}
	clock.AfterFunc(time.Second, tick)

	clock.Advance(time.Second)
	clock.Advance(time.Second)
	clock.Advance(time.Second)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestRecordingSinkSkipsUndecodableWires(t *testing.T) {
	sink := NewRecordingSink(nil)
	_ = sink.Send(`{"type":"componentShown","data":{"component":"itemCard"}}`)
	_ = sink.Send("garbage")

	if len(sink.Wires()) != 2 {
		t.Errorf("wires = %d, want 2 (raw capture keeps everything)", len(sink.Wires()))
	}
	if sink.Count() != 1 {
		t.Errorf("decoded envelopes = %d, want 1", sink.Count())
	}
}

func TestVisibilityStateString(t *testing.T) {
	tests := []struct {
		state VisibilityState
		want  string
	}{
		{StateHidden, "hidden"},
		{StateShowing, "showing"},
		{StateVisible, "visible"},
		{StateHiding, "hiding"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}
