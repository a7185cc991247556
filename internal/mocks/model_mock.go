package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockModel is a mock implementation of the language model client
type MockModel struct {
	mock.Mock
}

func (m *MockModel) Reply(ctx context.Context, userID int64, text string) (string, error) {
	args := m.Called(ctx, userID, text)
	return args.String(0), args.Error(1)
}

func (m *MockModel) ClearHistory(userID int64) {
	m.Called(userID)
}

func (m *MockModel) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}
