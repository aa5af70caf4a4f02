package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
	"rentdesk/internal/service"
)

// MockBillService is a mock implementation of service.BillService.
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) List(ctx context.Context, actor service.Actor, filter port.BillFilter, offset, limit int) ([]domain.Bill, int, error) {
	args := m.Called(ctx, actor, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Bill), args.Int(1), args.Error(2)
}

func (m *MockBillService) GetByID(ctx context.Context, actor service.Actor, billID uuid.UUID) (*domain.Bill, error) {
	args := m.Called(ctx, actor, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) Create(ctx context.Context, actor service.Actor, input service.CreateBillInput) (*domain.Bill, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) Delete(ctx context.Context, actor service.Actor, billID uuid.UUID) error {
	args := m.Called(ctx, actor, billID)
	return args.Error(0)
}

func (m *MockBillService) MarkPaid(ctx context.Context, actor service.Actor, billID uuid.UUID) (*domain.Bill, error) {
	args := m.Called(ctx, actor, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) UndoPayment(ctx context.Context, actor service.Actor, billID uuid.UUID) (*domain.Bill, error) {
	args := m.Called(ctx, actor, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) Profit(ctx context.Context, adminID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, adminID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBillService) ReconcileProfit(ctx context.Context, adminID uuid.UUID) (*domain.ProfitReconciliation, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitReconciliation), args.Error(1)
}
