package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rentdesk/internal/domain"
)

// MockTenantRepo is a mock implementation of port.TenantRepository.
type MockTenantRepo struct {
	mock.Mock
}

func (m *MockTenantRepo) Create(ctx context.Context, tenant *domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepo) GetByID(ctx context.Context, adminID, tenantID uuid.UUID) (*domain.Tenant, error) {
	args := m.Called(ctx, adminID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepo) ListByAdmin(ctx context.Context, adminID uuid.UUID, status domain.TenantStatus, offset, limit int) ([]domain.Tenant, int, error) {
	args := m.Called(ctx, adminID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Tenant), args.Int(1), args.Error(2)
}

func (m *MockTenantRepo) Update(ctx context.Context, tenant *domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepo) Delete(ctx context.Context, adminID, tenantID uuid.UUID) error {
	args := m.Called(ctx, adminID, tenantID)
	return args.Error(0)
}

func (m *MockTenantRepo) FindActiveTenancies(ctx context.Context, cutoff time.Time, adminID *uuid.UUID) ([]domain.Tenancy, error) {
	args := m.Called(ctx, cutoff, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenancy), args.Error(1)
}
