package main

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/polkiloo/orderform/internal/config"
	"github.com/polkiloo/orderform/internal/logger"
	"github.com/polkiloo/orderform/internal/metrics"
	"github.com/polkiloo/orderform/internal/notify"
	"github.com/polkiloo/orderform/internal/pkg/auth"
	"github.com/polkiloo/orderform/internal/pkg/mailer"
	"github.com/polkiloo/orderform/internal/storage/postgres"
	"github.com/polkiloo/orderform/internal/usecase"
)

// runtime holds the use cases a command operates on.
type runtime struct {
	Codes  *usecase.AccessCodeUseCase
	Admins *usecase.AdminUseCase

	stop func(context.Context) error
}

func (r *runtime) Close(ctx context.Context) error {
	if r.stop == nil {
		return nil
	}
	return r.stop(ctx)
}

type opener func(ctx context.Context) (*runtime, error)

// newRuntime builds the storage backed use cases from the environment.
// Flags belong to cobra, so configuration comes from env and .env only.
func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}

	rt := &runtime{}
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Provide(func() context.Context { return ctx }),
		logger.Module,
		metrics.Module,
		auth.Module,
		mailer.Module,
		notify.Module,
		postgres.Module,
		usecase.Module,
		fx.Populate(&rt.Codes, &rt.Admins),
	)
	if err := app.Err(); err != nil {
		return nil, fmt.Errorf("build runtime: %w", err)
	}
	if err := app.Start(ctx); err != nil {
		return nil, fmt.Errorf("start runtime: %w", err)
	}
	rt.stop = app.Stop
	return rt, nil
}

func withRuntime(ctx context.Context, open opener, fn func(*runtime) error) error {
	rt, err := open(ctx)
	if err != nil {
		return err
	}
	defer rt.Close(context.Background())
	return fn(rt)
}
