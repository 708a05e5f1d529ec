package repository

import (
	"context"

	"github.com/osse101/ReferralBot_Go/internal/domain"
)

// User defines the interface for user persistence
type User interface {
	Transactor

	// GetUserByExternalID returns the committed user with their referrals.
	// Returns domain.ErrUserNotFound when absent.
	GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	// GetFriends returns the users referred by externalID, highest lifetime total first
	GetFriends(ctx context.Context, externalID string) ([]domain.Friend, error)
	Ping(ctx context.Context) error
}

// UserTx defines the operations available inside a user transaction.
// Row reads ending in ForUpdate lock the row until the transaction ends.
type UserTx interface {
	GetUserForUpdate(ctx context.Context, externalID string) (*domain.User, error)
	GetUserByReferralCode(ctx context.Context, code string) (*domain.User, error)
	ReferralCodeExists(ctx context.Context, code string) (bool, error)

	// InsertUser stores a new user. Returns false when a row with the same
	// external ID already exists; the existing row is not modified.
	InsertUser(ctx context.Context, user *domain.User) (bool, error)
	// UpdateProfile applies the non-nil profile fields, refreshes last_active
	// and returns the resulting row.
	UpdateProfile(ctx context.Context, externalID string, profile domain.Profile) (*domain.User, error)
	// SetReferredBy sets the referrer once. Returns domain.ErrAlreadyReferred
	// when a referrer is already recorded.
	SetReferredBy(ctx context.Context, externalID, referrerID string) error
	// AddReferral records referredID in the referrer's set.
	// Returns domain.ErrAlreadyReferred when referredID is already a member of any set.
	AddReferral(ctx context.Context, referrerID, referredID string) error
	UpdateBalance(ctx context.Context, balance domain.Balance) error
}
