package ratelimit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/orderform/internal/config"
)

// Module provides the submission Limiter. Redis backs it when RATE_LIMIT_REDIS_URL is set.
var Module = fx.Provide(newLimiter)

type limiterParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

var newRedisClient = func(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

func newLimiter(p limiterParams) (Limiter, error) {
	cfg := p.Config
	if cfg.RateLimitRedisURL == "" {
		p.Logger.Info("rate limiter: in-memory", slog.Int("max", cfg.RateLimitMax), slog.Duration("window", cfg.RateLimitWindow))
		return NewFixedWindow(cfg.RateLimitMax, cfg.RateLimitWindow, nil), nil
	}

	client, err := newRedisClient(cfg.RateLimitRedisURL)
	if err != nil {
		return nil, fmt.Errorf("rate limiter redis url: %w", err)
	}
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("rate limiter redis ping: %w", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	p.Logger.Info("rate limiter: redis", slog.Int("max", cfg.RateLimitMax), slog.Duration("window", cfg.RateLimitWindow))
	return NewRedisFixedWindow(client, cfg.RateLimitMax, cfg.RateLimitWindow), nil
}
