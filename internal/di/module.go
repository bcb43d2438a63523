package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderform/internal/app"
	"github.com/polkiloo/orderform/internal/config"
	"github.com/polkiloo/orderform/internal/logger"
	"github.com/polkiloo/orderform/internal/metrics"
	"github.com/polkiloo/orderform/internal/notify"
	"github.com/polkiloo/orderform/internal/pkg/auth"
	"github.com/polkiloo/orderform/internal/pkg/mailer"
	"github.com/polkiloo/orderform/internal/pkg/ratelimit"
	"github.com/polkiloo/orderform/internal/server/http/handlers"
	"github.com/polkiloo/orderform/internal/server/http/router"
	"github.com/polkiloo/orderform/internal/storage/postgres"
	"github.com/polkiloo/orderform/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		ratelimit.Module,
		mailer.Module,
		notify.Module,
		postgres.Module,
		usecase.Module,
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		fx.Provide(func(f *app.OrderFormFacade) handlers.OrderFormFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
