package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/osse101/ReferralBot_Go/internal/domain"
	"github.com/osse101/ReferralBot_Go/internal/logger"
)

// Config controls the retry schedule
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// DefaultConfig returns 3 attempts waiting 1s then 2s
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  DefaultMaxAttempts,
		InitialDelay: DefaultInitialDelay,
	}
}

// Validate checks the schedule
func (c Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1, got %d", domain.ErrInvalidInput, c.MaxAttempts)
	}
	if c.InitialDelay < 0 {
		return fmt.Errorf("%w: initial delay must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

// NotifyFunc is called before each wait with the failure and the upcoming delay
type NotifyFunc func(err error, attempt int, delay time.Duration)

// Retrier retries transient store failures with exponential backoff.
// Domain errors are returned after the first call.
type Retrier struct {
	cfg      Config
	newTimer func() backoff.Timer
	notify   NotifyFunc
}

// Option configures a Retrier
type Option func(*Retrier)

// WithTimer replaces the wall-clock timer, used by tests to skip real waits
func WithTimer(newTimer func() backoff.Timer) Option {
	return func(r *Retrier) {
		r.newTimer = newTimer
	}
}

// WithNotify registers a callback invoked before each retry
func WithNotify(fn NotifyFunc) Option {
	return func(r *Retrier) {
		r.notify = fn
	}
}

// New creates a Retrier
func New(cfg Config, opts ...Option) *Retrier {
	r := &Retrier{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Retrier) schedule(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = r.cfg.InitialDelay
	exp.RandomizationFactor = 0
	exp.Multiplier = BackoffMultiplier
	exp.MaxInterval = MaxDelay
	exp.MaxElapsedTime = 0
	exp.Reset()

	retries := 0
	if r.cfg.MaxAttempts > 1 {
		retries = r.cfg.MaxAttempts - 1
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

// Do calls op until it succeeds, fails with a non-retryable error, or the
// attempts run out. The last error is returned unchanged, also when ctx ends
// between attempts.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)
	attempt := 0
	var lastErr error

	operation := func() error {
		attempt++
		err := op(ctx)
		lastErr = err
		if err == nil {
			return nil
		}
		if !domain.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, delay time.Duration) {
		log.Warn(LogMsgRetrying, "attempt", attempt, "max_attempts", r.cfg.MaxAttempts, "delay", delay, "error", err)
		if r.notify != nil {
			r.notify(err, attempt, delay)
		}
	}

	var timer backoff.Timer
	if r.newTimer != nil {
		timer = r.newTimer()
	}

	err := backoff.RetryNotifyWithTimer(operation, r.schedule(ctx), notify, timer)
	// backoff reports a done context instead of the failure that led to the wait
	if ctxErr := ctx.Err(); err != nil && ctxErr != nil && errors.Is(err, ctxErr) && lastErr != nil {
		err = lastErr
	}
	if err != nil && domain.IsRetryable(err) {
		log.Error(LogMsgExhausted, "attempts", attempt, "error", err)
	}
	return err
}

// Value is Do for operations that return a result
func Value[T any](ctx context.Context, r *Retrier, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := r.Do(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}
