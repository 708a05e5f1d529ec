package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/ReferralBot_Go/internal/bootstrap"
	"github.com/osse101/ReferralBot_Go/internal/config"
	"github.com/osse101/ReferralBot_Go/internal/database"
	"github.com/osse101/ReferralBot_Go/internal/database/postgres"
	"github.com/osse101/ReferralBot_Go/internal/handler"
	"github.com/osse101/ReferralBot_Go/internal/notify"
	"github.com/osse101/ReferralBot_Go/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFile := initLogger(cfg)

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		// Plain environment variables are allowed without a versioned .env file
		slog.Warn("Environment check", "error", err)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		_ = logFile.Close()
		return err
	}

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			_ = logFile.Close()
			return err
		}
	}

	repo := postgres.NewUserRepository(pool, cfg.DBAcquireTimeout)
	eng, err := bootstrap.NewEngine(cfg, repo)
	if err != nil {
		pool.Close()
		_ = logFile.Close()
		return err
	}

	notifier, err := notify.New(cfg.TelegramBotToken)
	if err != nil {
		pool.Close()
		_ = logFile.Close()
		return err
	}

	limiter, redisClient, err := bootstrap.NewRateLimiter(ctx, cfg)
	if err != nil {
		pool.Close()
		_ = logFile.Close()
		return err
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Engine:         eng,
		Notifier:       notifier,
		DB:             repo,
		Limiter:        limiter,
		Service: handler.ServiceInfo{
			Name:          cfg.ServiceName,
			Version:       cfg.Version,
			Environment:   cfg.Environment,
			ReferralBonus: cfg.ReferralBonus,
		},
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:  srv,
		Pool:    pool,
		Redis:   redisClient,
		LogFile: logFile,
	})

	return runErr
}
