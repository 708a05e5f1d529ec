package retry

import "time"

const (
	// DefaultMaxAttempts is the total number of calls, first try included
	DefaultMaxAttempts = 3

	// DefaultInitialDelay is the wait before the first retry; it doubles after every retry
	DefaultInitialDelay = 1 * time.Second

	// BackoffMultiplier is applied to the delay after each retry
	BackoffMultiplier = 2

	// MaxDelay caps a single wait
	MaxDelay = 1 * time.Minute
)

// Log messages
const (
	LogMsgRetrying  = "Store operation failed, retrying"
	LogMsgExhausted = "Store operation failed after all attempts"
)
