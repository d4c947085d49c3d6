package ovlkit

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	// Verify sentinel errors are distinct
	errs := []error{
		ErrMalformedEnvelope,
		ErrUnknownComponent,
		ErrInvalidPayload,
		ErrUnknownEventType,
		ErrComponentPinned,
		ErrClosed,
	}

	for i, err1 := range errs {
		for j, err2 := range errs {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v and %v", err1, err2)
			}
		}
	}
}

func TestIsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrMalformedEnvelope", ErrMalformedEnvelope, true},
		{"wrapped ErrMalformedEnvelope", fmt.Errorf("wrapped: %w", ErrMalformedEnvelope), true},
		{"other error", errors.New("other error"), false},
		{"ErrInvalidPayload", ErrInvalidPayload, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsMalformed(tt.err)
			if result != tt.expect {
				t.Errorf("IsMalformed(%v) = %v, want %v", tt.err, result, tt.expect)
			}
		})
	}
}

func TestIsInvalidPayload(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrInvalidPayload", ErrInvalidPayload, true},
		{"wrapped ErrInvalidPayload", fmt.Errorf("wrapped: %w", ErrInvalidPayload), true},
		{"ErrUnknownComponent", ErrUnknownComponent, false},
		{"other error", errors.New("other error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsInvalidPayload(tt.err)
			if result != tt.expect {
				t.Errorf("IsInvalidPayload(%v) = %v, want %v", tt.err, result, tt.expect)
			}
		})
	}
}

func TestIsUnknownComponent(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrUnknownComponent", ErrUnknownComponent, true},
		{"wrapped ErrUnknownComponent", fmt.Errorf("wrapped: %w", ErrUnknownComponent), true},
		{"ErrComponentPinned", ErrComponentPinned, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsUnknownComponent(tt.err)
			if result != tt.expect {
				t.Errorf("IsUnknownComponent(%v) = %v, want %v", tt.err, result, tt.expect)
			}
		})
	}
}
