package referral

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/ReferralBot_Go/internal/domain"
	"github.com/osse101/ReferralBot_Go/internal/logger"
	"github.com/osse101/ReferralBot_Go/internal/refcode"
	"github.com/osse101/ReferralBot_Go/internal/repository"
)

// Service links new users to the user who referred them
type Service interface {
	// Link applies a one-time referral and credits the bonus to both users.
	// Fails with domain.ErrInvalidCode, domain.ErrSelfReferral or
	// domain.ErrAlreadyReferred, in that order of precedence. A newUserID with
	// no row fails with domain.ErrUserNotFound after the code checks; callers
	// create the user first.
	Link(ctx context.Context, code, newUserID string) (*domain.ReferralResult, error)
}

// Crediter applies balance changes inside an existing transaction
type Crediter interface {
	ApplyInTx(ctx context.Context, tx repository.UserTx, externalID string, delta int64) (*domain.Balance, error)
}

type service struct {
	repo   repository.Transactor
	ledger Crediter
	bonus  int64
}

// NewService creates a referral linker crediting bonus to both parties
func NewService(repo repository.Transactor, ledger Crediter, bonus int64) (Service, error) {
	if bonus <= 0 {
		return nil, fmt.Errorf("%w: "+ErrMsgBonusNotPositive, domain.ErrInvalidInput, bonus)
	}
	return &service{repo: repo, ledger: ledger, bonus: bonus}, nil
}

func (s *service) Link(ctx context.Context, code, newUserID string) (*domain.ReferralResult, error) {
	log := logger.FromContext(ctx)

	code = refcode.Normalize(code)
	if code == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCode, ErrMsgCodeRequired)
	}
	if newUserID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUserIDRequired)
	}

	var result *domain.ReferralResult
	err := s.repo.WithTx(ctx, func(tx repository.UserTx) error {
		referrer, err := tx.GetUserByReferralCode(ctx, code)
		if errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidCode, code)
		}
		if err != nil {
			return err
		}

		if referrer.ExternalID == newUserID {
			return fmt.Errorf("%w: %s", domain.ErrSelfReferral, newUserID)
		}

		target, err := s.lockPair(ctx, tx, referrer.ExternalID, newUserID)
		if err != nil {
			return err
		}
		if target.ReferredBy != nil {
			return fmt.Errorf("%w: %s is referred by %s", domain.ErrAlreadyReferred, newUserID, *target.ReferredBy)
		}

		if err := tx.SetReferredBy(ctx, newUserID, referrer.ExternalID); err != nil {
			return err
		}
		if err := tx.AddReferral(ctx, referrer.ExternalID, newUserID); err != nil {
			return err
		}
		if _, err := s.ledger.ApplyInTx(ctx, tx, newUserID, s.bonus); err != nil {
			return fmt.Errorf(ErrMsgCreditFailedFmt, newUserID, err)
		}
		if _, err := s.ledger.ApplyInTx(ctx, tx, referrer.ExternalID, s.bonus); err != nil {
			return fmt.Errorf(ErrMsgCreditFailedFmt, referrer.ExternalID, err)
		}

		result = &domain.ReferralResult{
			ReferrerID: referrer.ExternalID,
			ReferredID: newUserID,
			Bonus:      s.bonus,
		}
		return nil
	})
	if err != nil {
		log.Warn(LogMsgLinkRejected, "code", code, "external_id", newUserID, "kind", domain.KindOf(err), "error", err)
		return nil, err
	}

	log.Info(LogMsgLinkApplied, "referrer_id", result.ReferrerID, "referred_id", newUserID, "bonus", s.bonus)
	return result, nil
}

// lockPair locks both rows in external ID order so two opposite links
// cannot deadlock, and returns the freshly read target.
func (s *service) lockPair(ctx context.Context, tx repository.UserTx, referrerID, targetID string) (*domain.User, error) {
	first, second := referrerID, targetID
	if second < first {
		first, second = second, first
	}

	var target *domain.User
	for _, id := range []string{first, second} {
		u, err := tx.GetUserForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if id == targetID {
			target = u
		}
	}
	return target, nil
}
