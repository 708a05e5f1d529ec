package bootstrap

import "time"

// Log file rotation
const (
	LogFileMaxSizeMB  = 100
	LogFileMaxBackups = 9
	LogFileMaxAgeDays = 28
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting referral service"
	LogMsgConfigurationLoaded = "Configuration loaded"
)

// Redis
const (
	RedisPingTimeout = 5 * time.Second

	LogMsgRedisRateLimiter  = "Using redis rate limiter"
	LogMsgMemoryRateLimiter = "Using in-memory rate limiter"
	LogMsgRateLimitDisabled = "Rate limiting disabled"

	ErrMsgRedisPingFailed = "failed to reach redis"
)

// Engine wiring
const (
	LogMsgEngineReady = "Referral engine ready"

	ErrMsgInvalidRetryConfig    = "invalid retry configuration"
	ErrMsgFailedCreateReferrals = "failed to create referral service"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgClosingDatabase      = "Closing database pool"
	LogMsgRedisCloseFailed     = "Redis client close failed"
	LogMsgLogFileCloseFailed   = "Log file close failed"
)
