package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Referral errors
	ErrMsgInvalidCode      = "invalid referral code"
	ErrMsgSelfReferral     = "cannot refer yourself"
	ErrMsgAlreadyReferred  = "user already has a referrer"
	ErrMsgExhaustedAttempt = "could not allocate a unique referral code"

	// Economy errors
	ErrMsgInsufficientBalance = "insufficient balance"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors
	ErrMsgConflict      = "concurrent update conflict"
	ErrMsgDBUnavailable = "database unavailable"
)

// Error kinds reported to callers alongside the message.
const (
	KindNotFound            = "not_found"
	KindInvalidCode         = "invalid_code"
	KindSelfReferral        = "self_referral"
	KindAlreadyReferred     = "already_referred"
	KindInsufficientBalance = "insufficient_balance"
	KindExhaustedAttempts   = "exhausted_attempts"
	KindInvalidInput        = "invalid_input"
	KindConflict            = "conflict"
	KindDBUnavailable       = "db_unavailable"
	KindInternal            = "internal"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	ErrInvalidCode       = errors.New(ErrMsgInvalidCode)
	ErrSelfReferral      = errors.New(ErrMsgSelfReferral)
	ErrAlreadyReferred   = errors.New(ErrMsgAlreadyReferred)
	ErrExhaustedAttempts = errors.New(ErrMsgExhaustedAttempt)

	ErrInsufficientBalance = errors.New(ErrMsgInsufficientBalance)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Transient store failures. Only these are retried.
	ErrConflict      = errors.New(ErrMsgConflict)
	ErrDBUnavailable = errors.New(ErrMsgDBUnavailable)
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrUserNotFound, KindNotFound},
	{ErrInvalidCode, KindInvalidCode},
	{ErrSelfReferral, KindSelfReferral},
	{ErrAlreadyReferred, KindAlreadyReferred},
	{ErrInsufficientBalance, KindInsufficientBalance},
	{ErrExhaustedAttempts, KindExhaustedAttempts},
	{ErrInvalidInput, KindInvalidInput},
	{ErrConflict, KindConflict},
	{ErrDBUnavailable, KindDBUnavailable},
}

// KindOf returns the taxonomy kind of err, or an empty string when err
// carries none of the domain errors.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ""
}

// IsRetryable reports whether err is a transient store failure.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrDBUnavailable)
}
