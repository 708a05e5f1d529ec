package bootstrap

import (
	"context"
	"io"
	"log/slog"

	"github.com/osse101/ReferralBot_Go/internal/database"
	"github.com/osse101/ReferralBot_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server  *server.Server
	Pool    database.Pool
	Redis   io.Closer
	LogFile io.Closer
}

// GracefulShutdown stops accepting requests, lets in-flight requests
// finish, then releases the pool and other clients. The log file is
// closed last so every shutdown step is recorded.
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			slog.Error(LogMsgRedisCloseFailed, "error", err)
		}
	}

	if c.Pool != nil {
		slog.Info(LogMsgClosingDatabase)
		c.Pool.Close()
	}

	slog.Info(LogMsgServerStopped)

	if c.LogFile != nil {
		if err := c.LogFile.Close(); err != nil {
			slog.Error(LogMsgLogFileCloseFailed, "error", err)
		}
	}
}
