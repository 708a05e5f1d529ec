package economy

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/ReferralBot_Go/internal/domain"
	"github.com/osse101/ReferralBot_Go/internal/repository"
)

// MockTx is a testify mock of repository.UserTx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) GetUserForUpdate(ctx context.Context, externalID string) (*domain.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockTx) GetUserByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockTx) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockTx) InsertUser(ctx context.Context, user *domain.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockTx) UpdateProfile(ctx context.Context, externalID string, profile domain.Profile) (*domain.User, error) {
	args := m.Called(ctx, externalID, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockTx) SetReferredBy(ctx context.Context, externalID, referrerID string) error {
	args := m.Called(ctx, externalID, referrerID)
	return args.Error(0)
}

func (m *MockTx) AddReferral(ctx context.Context, referrerID, referredID string) error {
	args := m.Called(ctx, referrerID, referredID)
	return args.Error(0)
}

func (m *MockTx) UpdateBalance(ctx context.Context, balance domain.Balance) error {
	args := m.Called(ctx, balance)
	return args.Error(0)
}

var _ repository.UserTx = (*MockTx)(nil)
