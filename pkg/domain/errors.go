package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Decode failure kinds. Typed errors below unwrap to one of these.
var (
	ErrTooShort       = errors.New("input too short")
	ErrBadEnvelope    = errors.New("bad envelope")
	ErrBadGroupLength = errors.New("bad group length")
	ErrInvalidSymbol  = errors.New("invalid symbol")
)

// ErrCacheMiss is returned by a result cache when the key is not stored.
var ErrCacheMiss = errors.New("cache miss")

// LengthError is returned when the stripped input is below the minimum length.
type LengthError struct {
	Input   string
	Length  int
	Minimum int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("length of input %q (%d) was too short to be a Levelance string (minimum %d)", e.Input, e.Length, e.Minimum)
}

func (e *LengthError) Unwrap() error { return ErrTooShort }

// EnvelopeError is returned when the start or end marker is missing.
type EnvelopeError struct {
	Input string
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("input %q is not a valid Levelance string: it must start with %s and end with %s", e.Input, StartMarker, EndMarker)
}

func (e *EnvelopeError) Unwrap() error { return ErrBadEnvelope }

// GroupLengthError lists every span whose length is not a multiple of GroupSize.
type GroupLengthError struct {
	Spans []string
}

func (e *GroupLengthError) Error() string {
	msgs := make([]string, len(e.Spans))
	for i, span := range e.Spans {
		msgs[i] = fmt.Sprintf("substring %q has length %d, not divisible by %d", span, len([]rune(span)), GroupSize)
	}
	return "invalid Levelance substrings: " + strings.Join(msgs, "; ")
}

func (e *GroupLengthError) Unwrap() error { return ErrBadGroupLength }

// SymbolError is returned for a body character outside the alphabet.
type SymbolError struct {
	Char   rune
	Offset int
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("char %q at offset %d is not a valid Levelance symbol", e.Char, e.Offset)
}

func (e *SymbolError) Unwrap() error { return ErrInvalidSymbol }

// Kind returns a stable snake_case name for a decode error, or "" if err is
// not one.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrTooShort):
		return "too_short"
	case errors.Is(err, ErrBadEnvelope):
		return "bad_envelope"
	case errors.Is(err, ErrBadGroupLength):
		return "bad_group_length"
	case errors.Is(err, ErrInvalidSymbol):
		return "invalid_symbol"
	default:
		return ""
	}
}
