package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/orderform/internal/config"
	"github.com/polkiloo/orderform/internal/domain/model"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewOrderFormFacade,
		newHTTPServer,
		func(f *OrderFormFacade) AdminBootstrapper { return f },
	),
	fx.Invoke(registerLifecycle),
	fx.Invoke(registerAdminBootstrap),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting orderform", slog.String("addr", p.Server.Addr))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("orderform stopped")
			return nil
		},
	})
}

// AdminBootstrapper creates or resets the operator account.
type AdminBootstrapper interface {
	BootstrapAdmin(ctx context.Context, email, password string) (*model.Admin, error)
}

type bootstrapParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Admins    AdminBootstrapper
	Logger    *slog.Logger
}

// registerAdminBootstrap ensures the ADMIN_EMAIL account exists once the store is up.
func registerAdminBootstrap(p bootstrapParams) {
	if p.Config.AdminEmail == "" || p.Config.AdminPassword == "" {
		return
	}
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return bootstrapAdmin(ctx, p.Admins, p.Config.AdminEmail, p.Config.AdminPassword, p.Logger)
		},
	})
}

func bootstrapAdmin(ctx context.Context, b AdminBootstrapper, email, password string, log *slog.Logger) error {
	if _, err := b.BootstrapAdmin(ctx, email, password); err != nil {
		log.Error("admin bootstrap failed", slog.String("email", email), slog.Any("error", err))
		return err
	}
	return nil
}
