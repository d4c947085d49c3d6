package encoding

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrMalformed indicates a wire string that could not be decoded into a
// well-formed envelope: not valid structured data, a missing or non-string
// type, or a control event with no data object.
var ErrMalformed = errors.New("encoding: malformed envelope")

// Codec serializes envelopes to wire strings and back.
//
// Encode is total for any well-formed envelope. Decode fails only with
// ErrMalformed; unknown event types and unknown fields inside data decode
// cleanly, since the dispatch layer (not the codec) decides what to do with
// types it does not recognize.
type Codec interface {
	Encode(env Envelope) (string, error)
	Decode(wire string) (Envelope, error)
}

// JSONCodec is the primary wire format: a JSON object {type, data}.
// This matches what in-process string bridges ferry between host and surface.
type JSONCodec struct{}

func (JSONCodec) Encode(env Envelope) (string, error) {
	b, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encoding: encode %q: %w", env.Type, err)
	}
	return string(b), nil
}

func (JSONCodec) Decode(wire string) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal([]byte(wire), &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := checkShape(env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// MsgpackCodec is a binary alternative for bridges that ferry bytes rather
// than text. The packed envelope is base64-encoded so the wire unit stays a
// string, keeping both codecs interchangeable behind the Codec interface.
type MsgpackCodec struct{}

func (MsgpackCodec) Encode(env Envelope) (string, error) {
	b, err := msgpack.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encoding: encode %q: %w", env.Type, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (MsgpackCodec) Decode(wire string) (Envelope, error) {
	b, err := base64.RawURLEncoding.DecodeString(wire)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var env Envelope
	if err := msgpack.Unmarshal(b, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := checkShape(env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// checkShape enforces the structural rules every envelope must satisfy
// regardless of wire format. Unknown types pass: only the closed set of
// control events carries a data-required constraint the codec can check.
func checkShape(env Envelope) error {
	if env.Type == "" {
		return fmt.Errorf("%w: missing type", ErrMalformed)
	}
	if InboundControl(env.Type) && env.Data == nil {
		return fmt.Errorf("%w: %s requires data", ErrMalformed, env.Type)
	}
	return nil
}
