package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/ReferralBot_Go/internal/domain"
	"github.com/osse101/ReferralBot_Go/internal/logger"
	"github.com/osse101/ReferralBot_Go/internal/refcode"
	"github.com/osse101/ReferralBot_Go/internal/repository"
)

// Service is the user directory
type Service interface {
	// GetOrCreate returns the user, creating it on first contact.
	// The bool reports whether this call created the row.
	GetOrCreate(ctx context.Context, externalID string, profile domain.Profile) (*domain.User, bool, error)
	Get(ctx context.Context, externalID string) (*domain.User, error)
	GetView(ctx context.Context, externalID string) (*domain.UserView, error)
}

// CodeAllocator hands out unused referral codes
type CodeAllocator interface {
	Allocate(ctx context.Context, lookup refcode.Lookup) (string, error)
}

type service struct {
	repo        repository.User
	codes       CodeAllocator
	botUsername string
	now         func() time.Time
}

// NewService creates a new user directory
func NewService(repo repository.User, codes CodeAllocator, botUsername string) Service {
	return &service{
		repo:        repo,
		codes:       codes,
		botUsername: botUsername,
		now:         time.Now,
	}
}

func (s *service) GetOrCreate(ctx context.Context, externalID string, profile domain.Profile) (*domain.User, bool, error) {
	log := logger.FromContext(ctx)

	if err := validateExternalID(externalID); err != nil {
		return nil, false, err
	}
	if err := validateProfile(profile); err != nil {
		return nil, false, err
	}

	var (
		result  *domain.User
		created bool
	)
	err := s.repo.WithTx(ctx, func(tx repository.UserTx) error {
		created = false

		_, err := tx.GetUserForUpdate(ctx, externalID)
		switch {
		case err == nil:
			result, err = tx.UpdateProfile(ctx, externalID, profile)
			return err
		case !errors.Is(err, domain.ErrUserNotFound):
			return err
		}

		code, err := s.codes.Allocate(ctx, tx)
		if err != nil {
			log.Error(LogErrFailedToAllocateCode, "external_id", externalID, "error", err)
			return err
		}

		user := s.newUser(externalID, profile, code)
		inserted, err := tx.InsertUser(ctx, user)
		if err != nil {
			return err
		}
		if !inserted {
			log.Info(LogMsgInsertConflict, "external_id", externalID)
			result, err = tx.UpdateProfile(ctx, externalID, profile)
			return err
		}

		result = user
		created = true
		return nil
	})
	if err != nil {
		log.Warn(LogMsgGetOrCreateFailed, "external_id", externalID, "error", err)
		return nil, false, err
	}

	if created {
		log.Info(LogMsgUserCreated, "external_id", externalID, "referral_code", result.ReferralCode)
	}
	return result, created, nil
}

func (s *service) newUser(externalID string, profile domain.Profile, code string) *domain.User {
	now := s.now().UTC()
	user := &domain.User{
		ExternalID:   externalID,
		ReferralCode: code,
		Referrals:    []string{},
		Level:        domain.MinLevel,
		CreatedAt:    now,
		LastActive:   now,
	}
	user.ApplyProfile(profile)
	return user
}

func (s *service) Get(ctx context.Context, externalID string) (*domain.User, error) {
	if err := validateExternalID(externalID); err != nil {
		return nil, err
	}
	return s.repo.GetUserByExternalID(ctx, externalID)
}

func (s *service) GetView(ctx context.Context, externalID string) (*domain.UserView, error) {
	user, err := s.Get(ctx, externalID)
	if err != nil {
		return nil, err
	}

	friends, err := s.repo.GetFriends(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}
	if friends == nil {
		friends = []domain.Friend{}
	}

	return &domain.UserView{
		User:         *user,
		ReferralLink: s.ReferralLink(user.ReferralCode),
		Friends:      friends,
	}, nil
}

// ReferralLink returns the deep link for code, or empty when no bot is configured
func (s *service) ReferralLink(code string) string {
	if s.botUsername == "" {
		return ""
	}
	return fmt.Sprintf(ReferralLinkFmt, s.botUsername, code)
}

func validateExternalID(externalID string) error {
	if externalID == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgExternalIDRequired)
	}
	if len(externalID) > domain.MaxExternalIDLength {
		return fmt.Errorf("%w: "+ErrMsgExternalIDTooLong, domain.ErrInvalidInput, domain.MaxExternalIDLength)
	}
	return nil
}

func validateProfile(p domain.Profile) error {
	fields := []struct {
		name  string
		value *string
	}{
		{"username", p.Username},
		{"first_name", p.FirstName},
		{"last_name", p.LastName},
	}
	for _, f := range fields {
		if f.value != nil && len(*f.value) > domain.MaxNameLength {
			return fmt.Errorf("%w: "+ErrMsgFieldTooLong, domain.ErrInvalidInput, f.name, domain.MaxNameLength)
		}
	}
	return nil
}
