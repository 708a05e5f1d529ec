// Package engine is the entry point callers use for referral operations.
// Every operation runs in its own store transaction and is retried on
// transient store failures.
package engine

import (
	"context"
	"time"

	"github.com/osse101/ReferralBot_Go/internal/domain"
	"github.com/osse101/ReferralBot_Go/internal/economy"
	"github.com/osse101/ReferralBot_Go/internal/metrics"
	"github.com/osse101/ReferralBot_Go/internal/referral"
	"github.com/osse101/ReferralBot_Go/internal/retry"
	"github.com/osse101/ReferralBot_Go/internal/user"
)

// Operation names used in metrics
const (
	OpGetOrCreateUser = "get_or_create_user"
	OpApplyReferral   = "apply_referral"
	OpCreditCoins     = "credit_coins"
	OpGetUserView     = "get_user_view"
)

// Service defines the operations exposed to HTTP and bot handlers
type Service interface {
	GetOrCreateUser(ctx context.Context, externalID string, profile domain.Profile) (*domain.User, bool, error)
	ApplyReferral(ctx context.Context, code, newUserID string) (*domain.ReferralResult, error)
	CreditCoins(ctx context.Context, externalID string, delta int64) (*domain.Balance, error)
	GetUserView(ctx context.Context, externalID string) (*domain.UserView, error)
}

// Engine wires the directory, linker and ledger behind one retrier
type Engine struct {
	users     user.Service
	referrals referral.Service
	ledger    economy.Service
	retrier   *retry.Retrier
}

// New creates an Engine. Retries are counted in metrics.StoreRetriesTotal.
func New(users user.Service, referrals referral.Service, ledger economy.Service, cfg retry.Config, opts ...retry.Option) *Engine {
	opts = append([]retry.Option{retry.WithNotify(countRetry)}, opts...)
	return &Engine{
		users:     users,
		referrals: referrals,
		ledger:    ledger,
		retrier:   retry.New(cfg, opts...),
	}
}

func countRetry(err error, _ int, _ time.Duration) {
	metrics.StoreRetriesTotal.WithLabelValues(domain.KindOf(err)).Inc()
}

func observe(op string, start time.Time) {
	metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

var _ Service = (*Engine)(nil)

type created struct {
	user    *domain.User
	created bool
}

func (e *Engine) GetOrCreateUser(ctx context.Context, externalID string, profile domain.Profile) (*domain.User, bool, error) {
	defer observe(OpGetOrCreateUser, time.Now())

	res, err := retry.Value(ctx, e.retrier, func(ctx context.Context) (created, error) {
		u, isNew, err := e.users.GetOrCreate(ctx, externalID, profile)
		return created{user: u, created: isNew}, err
	})
	if err != nil {
		return nil, false, err
	}
	if res.created {
		metrics.UsersCreatedTotal.Inc()
	}
	return res.user, res.created, nil
}

func (e *Engine) ApplyReferral(ctx context.Context, code, newUserID string) (*domain.ReferralResult, error) {
	defer observe(OpApplyReferral, time.Now())

	result, err := retry.Value(ctx, e.retrier, func(ctx context.Context) (*domain.ReferralResult, error) {
		return e.referrals.Link(ctx, code, newUserID)
	})
	metrics.ReferralLinksTotal.WithLabelValues(metrics.ResultLabel(domain.KindOf(err), err)).Inc()
	return result, err
}

func (e *Engine) CreditCoins(ctx context.Context, externalID string, delta int64) (*domain.Balance, error) {
	defer observe(OpCreditCoins, time.Now())

	balance, err := retry.Value(ctx, e.retrier, func(ctx context.Context) (*domain.Balance, error) {
		return e.ledger.Credit(ctx, externalID, delta)
	})
	metrics.CoinCreditsTotal.WithLabelValues(metrics.ResultLabel(domain.KindOf(err), err)).Inc()
	return balance, err
}

func (e *Engine) GetUserView(ctx context.Context, externalID string) (*domain.UserView, error) {
	defer observe(OpGetUserView, time.Now())

	return retry.Value(ctx, e.retrier, func(ctx context.Context) (*domain.UserView, error) {
		return e.users.GetView(ctx, externalID)
	})
}
