package economy

import (
	"context"
	"fmt"
	"math"

	"github.com/osse101/ReferralBot_Go/internal/domain"
	"github.com/osse101/ReferralBot_Go/internal/logger"
	"github.com/osse101/ReferralBot_Go/internal/repository"
)

// Service defines the balance ledger
type Service interface {
	// Credit applies a signed delta in its own transaction
	Credit(ctx context.Context, externalID string, delta int64) (*domain.Balance, error)
	// ApplyInTx applies a signed delta inside a transaction owned by the caller
	ApplyInTx(ctx context.Context, tx repository.UserTx, externalID string, delta int64) (*domain.Balance, error)
}

// Ledger is the only writer of coins, total_coins and level
type Ledger struct {
	repo repository.Transactor
}

// NewLedger creates a new ledger over the given store
func NewLedger(repo repository.Transactor) *Ledger {
	return &Ledger{repo: repo}
}

func (l *Ledger) Credit(ctx context.Context, externalID string, delta int64) (*domain.Balance, error) {
	if externalID == "" {
		return nil, fmt.Errorf("%w: external id is required", domain.ErrInvalidInput)
	}

	var result *domain.Balance
	err := l.repo.WithTx(ctx, func(tx repository.UserTx) error {
		balance, err := l.ApplyInTx(ctx, tx, externalID, delta)
		if err != nil {
			return err
		}
		result = balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (l *Ledger) ApplyInTx(ctx context.Context, tx repository.UserTx, externalID string, delta int64) (*domain.Balance, error) {
	log := logger.FromContext(ctx)

	user, err := tx.GetUserForUpdate(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadUserFmt, externalID, err)
	}

	next, err := nextBalance(user, delta)
	if err != nil {
		return nil, err
	}
	if next.Coins < 0 {
		log.Warn(LogMsgCreditRejected, "external_id", externalID, "coins", user.Coins, "delta", delta)
		return nil, fmt.Errorf("%w: "+ErrMsgInsufficientBalanceFmt, domain.ErrInsufficientBalance, externalID, user.Coins, delta)
	}

	if err := tx.UpdateBalance(ctx, next); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateBalanceFmt, externalID, err)
	}

	log.Debug(LogMsgCreditApplied, "external_id", externalID, "delta", delta, "coins", next.Coins, "total_coins", next.TotalCoins)
	return &next, nil
}

// nextBalance computes the post-credit state. Debits never reduce the lifetime total.
func nextBalance(user *domain.User, delta int64) (domain.Balance, error) {
	if delta > 0 && (user.Coins > math.MaxInt64-delta || user.TotalCoins > math.MaxInt64-delta) {
		return domain.Balance{}, fmt.Errorf("%w: "+ErrMsgBalanceOverflowFmt, domain.ErrInvalidInput, delta, user.ExternalID)
	}

	total := user.TotalCoins
	if delta > 0 {
		total += delta
	}

	return domain.Balance{
		ExternalID: user.ExternalID,
		Coins:      user.Coins + delta,
		TotalCoins: total,
		Level:      domain.LevelForTotal(total),
	}, nil
}
