package handler

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPinger mocks the readiness dependency
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ Pinger = (*MockPinger)(nil)
