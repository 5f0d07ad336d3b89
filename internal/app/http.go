package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/pern-todo/internal/config"
	"github.com/adanyl0v/pern-todo/internal/delivery/http/v1"
	"github.com/adanyl0v/pern-todo/internal/services"
)

// postgresPool is satisfied by *pgxpool.Pool.
type postgresPool interface {
	services.PgxPool
	v1.Pinger
}

func MustListenAndServeHTTP(logger zerolog.Logger, cfg *config.Config, pool postgresPool) {
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := newRouter(logger, cfg, pool)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to set up http router")
		panic(err)
	}

	httpCfg := cfg.HTTP
	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info().
		Str("signal", sig.String()).
		Dur("timeout", httpCfg.ShutdownTimeout).
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err = server.Shutdown(ctx)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	logger.Info().Msg("shut down http server")
}

func newRouter(logger zerolog.Logger, cfg *config.Config, pool postgresPool) (*gin.Engine, error) {
	hasher, err := services.NewPasswordHasher(cfg.Password.Algorithm, cfg.Password.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}

	v1Handler := v1.New(
		logger,
		pool,
		services.NewTodoService(logger, pool),
		services.NewCompletedTodoService(logger, pool),
		services.NewAuthService(
			logger,
			pool,
			hasher,
			cfg.JWT.Issuer,
			[]byte(cfg.JWT.SigningKey),
			cfg.JWT.TokenTTL,
		),
		cfg.HTTP.RequestTimeout,
	)

	router := gin.New()
	v1.RegisterRoutes(router, v1Handler)
	return router, nil
}
