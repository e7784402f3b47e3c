package levelance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/levelance/internal/logging"
	"github.com/aretw0/levelance/internal/runtime"
	"github.com/aretw0/levelance/internal/tokenizer"
	"github.com/aretw0/levelance/pkg/domain"
	"github.com/aretw0/levelance/pkg/ports"
)

// Result is the outcome of a successful decode.
type Result struct {
	Output      string `json:"output"`
	Digits      []int  `json:"digits"`
	TotalLength int    `json:"total_length"`
	Cached      bool   `json:"cached,omitempty"`
}

// Engine is the high-level entry point for the Levelance library.
// It wraps the internal decoder and adds caching and observability.
// An Engine is safe for concurrent use when its cache is.
type Engine struct {
	decoder *runtime.Decoder
	cache   ports.ResultCache
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	strict  bool
	now     func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCache stores successful decodes in cache and serves repeats from it.
func WithCache(cache ports.ResultCache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithStrict disables delimiter support: '.' becomes an invalid symbol and
// the output is the bare digit sequence.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// New initializes a new Levelance Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.decoder = runtime.NewDecoder(
		runtime.WithLogger(eng.logger),
		runtime.WithTokenizer(tokenizer.New(tokenizer.WithDelimiters(!eng.strict))),
	)
	eng.logger = eng.logger.With("mode", string(eng.decoder.Mode()))
	return eng
}

// Mode reports whether the engine decodes in delimited or strict mode.
func (e *Engine) Mode() domain.Mode {
	return e.decoder.Mode()
}

// Decode decodes input. Decode errors unwrap to the domain sentinels
// (domain.ErrTooShort, domain.ErrBadEnvelope, domain.ErrBadGroupLength,
// domain.ErrInvalidSymbol). Cache failures are logged, never returned.
func (e *Engine) Decode(ctx context.Context, input string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	start := e.now()
	event := &domain.DecodeEvent{
		Timestamp:   start,
		Mode:        e.Mode(),
		InputLength: len(input),
	}
	key := ports.CacheKey(e.Mode(), input)

	if e.cache != nil {
		cached, err := e.cache.Get(ctx, key)
		switch {
		case err == nil:
			event.Cached = true
			event.Groups = len(cached.Digits)
			event.Duration = e.now().Sub(start)
			if e.hooks.OnCacheHit != nil {
				e.hooks.OnCacheHit(ctx, event)
			}
			if e.hooks.OnDecode != nil {
				e.hooks.OnDecode(ctx, event)
			}
			return Result{
				Output:      cached.Output,
				Digits:      cached.Digits,
				TotalLength: cached.TotalLength,
				Cached:      true,
			}, nil
		case !errors.Is(err, domain.ErrCacheMiss):
			e.logger.Warn("cache lookup failed", "error", err)
		}
	}

	decoded, err := e.decoder.Decode(input)
	event.Duration = e.now().Sub(start)
	if err != nil {
		event.Err = err
		if e.hooks.OnDecode != nil {
			e.hooks.OnDecode(ctx, event)
		}
		return Result{}, err
	}

	res := Result{
		Output:      decoded.String(),
		Digits:      decoded.Digits(),
		TotalLength: decoded.TotalLength,
	}
	event.Groups = len(res.Digits)
	if e.hooks.OnDecode != nil {
		e.hooks.OnDecode(ctx, event)
	}

	if e.cache != nil {
		err := e.cache.Put(ctx, key, ports.Result{
			Output:      res.Output,
			Digits:      res.Digits,
			TotalLength: res.TotalLength,
		})
		if err != nil {
			e.logger.Warn("cache store failed", "error", err)
		}
	}
	return res, nil
}

// Explain returns the evaluation trace of every group in input.
func (e *Engine) Explain(ctx context.Context, input string) ([]domain.Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.decoder.Explain(input)
}

// Decode decodes input with delimiter support and no cache.
func Decode(input string) (string, error) {
	decoded, err := runtime.NewDecoder().Decode(input)
	if err != nil {
		return "", err
	}
	return decoded.String(), nil
}

// DecodeDigits decodes input with delimiter support and returns the group
// digits only.
func DecodeDigits(input string) ([]int, error) {
	return runtime.NewDecoder().DecodeDigits(input)
}
