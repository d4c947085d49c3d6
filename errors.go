package ovlkit

import "errors"

// Sentinel errors for protocol and lifecycle operations.
//
// Every failure in this package is local and non-fatal: a command that fails
// is dropped, a diagnostic is logged, and the session continues. No error
// here ever leaves an instance partially mutated.
var (
	ErrMalformedEnvelope = errors.New("ovlkit: malformed envelope")
	ErrUnknownComponent  = errors.New("ovlkit: unknown component")
	ErrInvalidPayload    = errors.New("ovlkit: invalid payload")
	ErrUnknownEventType  = errors.New("ovlkit: unknown event type")
	ErrComponentPinned   = errors.New("ovlkit: component is pinned")
	ErrClosed            = errors.New("ovlkit: controller is closed")
)

// IsMalformed checks if err is a wire-decoding failure.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedEnvelope)
}

// IsUnknownComponent checks if err references an unregistered component kind.
func IsUnknownComponent(err error) bool {
	return errors.Is(err, ErrUnknownComponent)
}

// IsInvalidPayload checks if err is a payload schema violation.
func IsInvalidPayload(err error) bool {
	return errors.Is(err, ErrInvalidPayload)
}

// IsPinned checks if err is a rejected command against a pinned component.
func IsPinned(err error) bool {
	return errors.Is(err, ErrComponentPinned)
}
