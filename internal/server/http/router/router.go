package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/orderform/internal/metrics"
	"github.com/polkiloo/orderform/internal/server/http/handlers"
	"github.com/polkiloo/orderform/internal/server/http/middleware"
)

type routerParams struct {
	fx.In

	Facade  handlers.OrderFormFacade
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p routerParams) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.RequestMetrics(p.Metrics))
	engine.Use(middleware.DecompressRequest())
	engine.Use(middleware.LimitBody(middleware.MaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	codeHandler := handlers.NewAccessCodeHandler(p.Facade)
	orderHandler := handlers.NewOrderHandler(p.Facade)
	adminHandler := handlers.NewAdminHandler(p.Facade)
	healthHandler := handlers.NewHealthHandler(p.Facade)

	engine.POST("/validate-access-code", codeHandler.Validate)
	engine.POST("/send-order", orderHandler.Send)
	engine.GET("/products", orderHandler.Products)
	engine.GET("/healthz", healthHandler.Check)
	engine.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	admin := engine.Group("/api/admin")
	admin.POST("/login", adminHandler.Login)

	codes := admin.Group("/access-codes")
	codes.Use(middleware.AdminRequired(p.Facade))
	codes.GET("", adminHandler.ListCodes)
	codes.POST("", adminHandler.CreateCode)
	codes.POST("/generate", adminHandler.GenerateCode)
	codes.GET("/export", adminHandler.ExportCodes)
	codes.POST("/:code/deactivate", adminHandler.DeactivateCode)
	codes.DELETE("/:code", adminHandler.DeleteCode)

	return engine
}
