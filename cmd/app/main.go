package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"serenestays/cmd/fx/auth_fx"
	"serenestays/cmd/fx/bookings_fx"
	"serenestays/cmd/fx/config_fx"
	"serenestays/cmd/fx/db_fx"
	"serenestays/cmd/fx/logger_fx"
	"serenestays/cmd/fx/memcache_fx"
	"serenestays/cmd/fx/rooms_fx"
	"serenestays/cmd/fx/subscriptions_fx"
	"serenestays/cmd/fx/users_fx"
	"serenestays/internal/config"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		auth_fx.Module,
		rooms_fx.Module,
		bookings_fx.Module,
		users_fx.Module,
		subscriptions_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("Serene-stays server is running", zap.String("port", cfg.Port))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
