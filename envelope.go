package ovlkit

import (
	"errors"
	"fmt"

	"github.com/ovlkit/ovlkit/lib/encoding"
)

// Envelope is an alias for encoding.Envelope for convenience.
type Envelope = encoding.Envelope

// EventType is an alias for encoding.EventType for convenience.
type EventType = encoding.EventType

// Codec is an alias for encoding.Codec for convenience.
type Codec = encoding.Codec

// Wire event types, re-exported from lib/encoding so callers only need this
// package for everyday use.
const (
	EventShowComponent       = encoding.EventShowComponent
	EventHideComponent       = encoding.EventHideComponent
	EventUpdateComponentData = encoding.EventUpdateComponentData

	EventFollowButtonClicked  = encoding.EventFollowButtonClicked
	EventBuyNowButtonClicked  = encoding.EventBuyNowButtonClicked
	EventExploreButtonClicked = encoding.EventExploreButtonClicked
	EventRewardBadgeClicked   = encoding.EventRewardBadgeClicked
	EventComponentShown       = encoding.EventComponentShown
	EventComponentHidden      = encoding.EventComponentHidden
	EventWebViewReady         = encoding.EventWebViewReady
)

// JSONCodec returns the default textual wire codec.
func JSONCodec() Codec { return encoding.JSONCodec{} }

// MsgpackCodec returns the binary wire codec for byte-ferrying bridges.
func MsgpackCodec() Codec { return encoding.MsgpackCodec{} }

// wrapEncodingError maps encoding package errors onto ovlkit sentinels.
func wrapEncodingError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, encoding.ErrMalformed) {
		return fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return err
}
