package config

import "time"

// Defaults
const (
	DefaultPort               = "8080"
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultEnvironment        = "dev"
	DefaultServiceName        = "referral-bot"
	DefaultVersion            = "dev"
	DefaultDBName             = "referralbot"
	DefaultDBMaxConns         = 10
	DefaultDBAcquireTimeout   = 5 * time.Second
	DefaultDBMaxConnIdle      = 5 * time.Minute
	DefaultDBMaxConnLifetime  = 1 * time.Hour
	DefaultReferralBonus      = 5000
	DefaultRetryMaxAttempts   = 3
	DefaultRetryInitialDelay  = 1 * time.Second
	DefaultRateLimitPerMinute = 120
	DefaultShutdownTimeout    = 10 * time.Second
)

// Environment names
const (
	EnvironmentDev        = "dev"
	EnvironmentProduction = "prod"
)
