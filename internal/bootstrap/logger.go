package bootstrap

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/osse101/ReferralBot_Go/internal/config"
	"github.com/osse101/ReferralBot_Go/internal/logger"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogger installs the default logger. Records go to stdout and, when
// LOG_FILE is set, to a size-rotated file as well. The returned closer
// releases the file and must be closed on shutdown.
func SetupLogger(cfg *config.Config) io.Closer {
	var (
		w      io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)

	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    LogFileMaxSizeMB,
			MaxBackups: LogFileMaxBackups,
			MaxAge:     LogFileMaxAgeDays,
			Compress:   true,
		}
		w = io.MultiWriter(os.Stdout, rotator)
		closer = rotator
	}

	// Source locations only in development
	addSource := cfg.Environment == config.EnvironmentDev

	logger.InitLoggerWithWriter(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	), w)

	slog.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat, "file", cfg.LogFile)
	slog.Info(LogMsgStartingService, "environment", cfg.Environment, "version", cfg.Version)
	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"db_max_conns", cfg.DBMaxConns,
		"port", cfg.Port,
		"referral_bonus", cfg.ReferralBonus,
		"retry_max_attempts", cfg.RetryMaxAttempts)

	return closer
}
