package domain

import (
	"context"
	"time"
)

// Mode names the tokenizer configuration used for a decode.
type Mode string

const (
	ModeDelimited Mode = "delimited"
	ModeStrict    Mode = "strict"
)

// DecodeEvent describes a finished decode attempt.
type DecodeEvent struct {
	Timestamp   time.Time     `json:"timestamp"`
	Mode        Mode          `json:"mode"`
	InputLength int           `json:"input_length"`
	Groups      int           `json:"groups"`
	Cached      bool          `json:"cached,omitempty"`
	Err         error         `json:"-"`
	Duration    time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnDecode   func(context.Context, *DecodeEvent)
	OnCacheHit func(context.Context, *DecodeEvent)
}
