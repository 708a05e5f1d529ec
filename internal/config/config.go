package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key for authentication
	Environment string
	ServiceName string
	Version     string

	LogLevel  string
	LogFormat string
	LogFile   string // rotated file output, stdout only when empty

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBAcquireTimeout  time.Duration
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	AutoMigrate       bool

	ReferralBonus     int64
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration

	BotUsername      string
	TelegramBotToken string

	RedisAddr          string // shared rate limiter, in-memory when empty
	RedisPassword      string
	RedisDB            int
	RateLimitPerMinute int
	TrustedProxies     []string
	ShutdownTimeout    time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		LogLevel:  getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat: getEnv("LOG_FORMAT", DefaultLogFormat),
		LogFile:   getEnv("LOG_FILE", ""),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBAcquireTimeout:  getEnvAsDuration("DB_ACQUIRE_TIMEOUT", DefaultDBAcquireTimeout),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdle),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
		AutoMigrate:       getEnvAsBool("AUTO_MIGRATE", false),

		ReferralBonus:     int64(getEnvAsInt("REFERRAL_BONUS", DefaultReferralBonus)),
		RetryMaxAttempts:  getEnvAsInt("RETRY_MAX_ATTEMPTS", DefaultRetryMaxAttempts),
		RetryInitialDelay: getEnvAsDuration("RETRY_INITIAL_DELAY", DefaultRetryInitialDelay),

		BotUsername:      strings.TrimPrefix(getEnv("BOT_USERNAME", ""), "@"),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),

		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", DefaultRateLimitPerMinute),
		TrustedProxies:     getEnvAsList("TRUSTED_PROXIES"),
		ShutdownTimeout:    getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}

	portStr := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values the engine cannot run with
func (c *Config) Validate() error {
	var problems []string
	if c.ReferralBonus <= 0 {
		problems = append(problems, fmt.Sprintf("REFERRAL_BONUS must be positive, got %d", c.ReferralBonus))
	}
	if c.RetryMaxAttempts < 1 {
		problems = append(problems, fmt.Sprintf("RETRY_MAX_ATTEMPTS must be at least 1, got %d", c.RetryMaxAttempts))
	}
	if c.RetryInitialDelay < 0 {
		problems = append(problems, "RETRY_INITIAL_DELAY must not be negative")
	}
	if c.DBMaxConns < 1 {
		problems = append(problems, fmt.Sprintf("DB_MAX_CONNS must be at least 1, got %d", c.DBMaxConns))
	}
	if c.DBAcquireTimeout <= 0 {
		problems = append(problems, "DB_ACQUIRE_TIMEOUT must be positive")
	}
	if c.RateLimitPerMinute < 0 {
		problems = append(problems, "RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// IsProduction reports whether the service runs in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction || c.Environment == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a duration such as "5s", falling back to the default when unset or invalid
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
