package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockProfitRepo is a mock implementation of port.ProfitRepository.
type MockProfitRepo struct {
	mock.Mock
}

func (m *MockProfitRepo) GetTotal(ctx context.Context, adminID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, adminID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockProfitRepo) SumPaidBills(ctx context.Context, adminID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, adminID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
