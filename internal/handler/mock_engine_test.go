package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/ReferralBot_Go/internal/domain"
	"github.com/osse101/ReferralBot_Go/internal/engine"
)

// MockEngine mocks engine.Service
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) GetOrCreateUser(ctx context.Context, externalID string, profile domain.Profile) (*domain.User, bool, error) {
	args := m.Called(ctx, externalID, profile)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Bool(1), args.Error(2)
}

func (m *MockEngine) ApplyReferral(ctx context.Context, code, newUserID string) (*domain.ReferralResult, error) {
	args := m.Called(ctx, code, newUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferralResult), args.Error(1)
}

func (m *MockEngine) CreditCoins(ctx context.Context, externalID string, delta int64) (*domain.Balance, error) {
	args := m.Called(ctx, externalID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockEngine) GetUserView(ctx context.Context, externalID string) (*domain.UserView, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserView), args.Error(1)
}

var _ engine.Service = (*MockEngine)(nil)
