package database

import "time"

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2

	// DefaultMaxConnections keeps the pool small; every operation holds one connection briefly
	DefaultMaxConnections = 10

	// DefaultAcquireTimeout bounds the wait for a free connection
	DefaultAcquireTimeout = 5 * time.Second

	DefaultMaxConnIdleTime = 5 * time.Minute
	DefaultMaxConnLifetime = 1 * time.Hour
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToCreateMigrator  = "failed to create migration provider"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationApplied                = "Migration applied"
	LogMsgMigrationsUpToDate              = "Database schema is up to date"
)
