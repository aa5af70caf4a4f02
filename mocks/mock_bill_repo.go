package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

// MockBillRepo is a mock implementation of port.BillRepository.
type MockBillRepo struct {
	mock.Mock
}

func (m *MockBillRepo) Insert(ctx context.Context, bill *domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepo) FindForMonth(ctx context.Context, tenantID uuid.UUID, month domain.Month, adminID uuid.UUID) (*domain.Bill, error) {
	args := m.Called(ctx, tenantID, month, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepo) GetByID(ctx context.Context, billID uuid.UUID, adminID *uuid.UUID) (*domain.Bill, error) {
	args := m.Called(ctx, billID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepo) List(ctx context.Context, filter port.BillFilter, offset, limit int) ([]domain.Bill, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Bill), args.Int(1), args.Error(2)
}

func (m *MockBillRepo) CountForMonth(ctx context.Context, month domain.Month, adminID *uuid.UUID) (int, error) {
	args := m.Called(ctx, month, adminID)
	return args.Int(0), args.Error(1)
}

func (m *MockBillRepo) Delete(ctx context.Context, billID uuid.UUID, adminID *uuid.UUID) error {
	args := m.Called(ctx, billID, adminID)
	return args.Error(0)
}
