package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"rentdesk/internal/domain"
)

// MockPaymentLedger is a mock implementation of port.PaymentLedger.
type MockPaymentLedger struct {
	mock.Mock
}

func (m *MockPaymentLedger) MarkPaid(ctx context.Context, billID uuid.UUID, adminID *uuid.UUID, paidAt time.Time) (*domain.Bill, decimal.Decimal, error) {
	args := m.Called(ctx, billID, adminID, paidAt)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.Bill), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockPaymentLedger) UndoPayment(ctx context.Context, billID uuid.UUID, adminID *uuid.UUID) (*domain.Bill, decimal.Decimal, error) {
	args := m.Called(ctx, billID, adminID)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.Bill), args.Get(1).(decimal.Decimal), args.Error(2)
}
