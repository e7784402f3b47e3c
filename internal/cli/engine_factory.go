package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/levelance"
	"github.com/aretw0/levelance/internal/config"
	"github.com/aretw0/levelance/pkg/adapters/memory"
	"github.com/aretw0/levelance/pkg/adapters/redis"
	"github.com/aretw0/levelance/pkg/domain"
	"github.com/aretw0/levelance/pkg/ports"
)

// EngineOptions carries what every command needs to build an engine.
type EngineOptions struct {
	Strict bool
	Cache  ports.ResultCache
	Hooks  []domain.LifecycleHooks
}

// CreateEngine initializes a Levelance engine with standard CLI conventions.
func CreateEngine(opts EngineOptions, logger *slog.Logger) *levelance.Engine {
	engineOpts := []levelance.Option{
		levelance.WithLogger(logger),
		levelance.WithStrict(opts.Strict),
	}

	hooks := append([]domain.LifecycleHooks{createDebugHooks(logger)}, opts.Hooks...)
	engineOpts = append(engineOpts, levelance.WithLifecycleHooks(combineHooks(hooks...)))

	if opts.Cache != nil {
		engineOpts = append(engineOpts, levelance.WithCache(opts.Cache))
	}
	return levelance.New(engineOpts...)
}

// CreateCache builds the result cache selected by cfg. The returned close
// function is never nil.
func CreateCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (ports.ResultCache, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "", config.CacheNone:
		return nil, noop, nil
	case config.CacheMemory:
		logger.Debug("Using in-memory result cache")
		return memory.NewCache(), noop, nil
	case config.CacheRedis:
		opts := []redis.Option{redis.WithTTL(cfg.Redis.TTL)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := cache.Ping(ctx); err != nil {
			cache.Close()
			return nil, noop, fmt.Errorf("error connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("Using redis result cache", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		return cache, cache.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// createDebugHooks logs every decode at debug level.
func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDecode: func(ctx context.Context, e *domain.DecodeEvent) {
			if e.Err != nil {
				logger.Debug("Decode (Error)", "kind", domain.Kind(e.Err), "err", e.Err)
				return
			}
			logger.Debug("Decode (Success)", "groups", e.Groups, "cached", e.Cached, "duration", e.Duration)
		},
		OnCacheHit: func(ctx context.Context, e *domain.DecodeEvent) {
			logger.Debug("Cache Hit", "input_len", e.InputLength)
		},
	}
}

// combineHooks fans each event out to every hook set in order.
func combineHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDecode: func(ctx context.Context, e *domain.DecodeEvent) {
			for _, h := range sets {
				if h.OnDecode != nil {
					h.OnDecode(ctx, e)
				}
			}
		},
		OnCacheHit: func(ctx context.Context, e *domain.DecodeEvent) {
			for _, h := range sets {
				if h.OnCacheHit != nil {
					h.OnCacheHit(ctx, e)
				}
			}
		},
	}
}
