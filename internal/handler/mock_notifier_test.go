package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/ReferralBot_Go/internal/notify"
)

// MockNotifier mocks notify.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, chatID, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}

var _ notify.Notifier = (*MockNotifier)(nil)
