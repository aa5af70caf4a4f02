package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rentdesk/internal/domain"
)

// MockGenerationService is a mock implementation of service.GenerationService.
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) Generate(ctx context.Context, month domain.Month, adminID *uuid.UUID) (*domain.GenerationReport, error) {
	args := m.Called(ctx, month, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerationReport), args.Error(1)
}

func (m *MockGenerationService) Stats(ctx context.Context, month domain.Month, adminID *uuid.UUID) (*domain.GenerationStats, error) {
	args := m.Called(ctx, month, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerationStats), args.Error(1)
}

func (m *MockGenerationService) Status() domain.RunStatus {
	args := m.Called()
	return args.Get(0).(domain.RunStatus)
}

func (m *MockGenerationService) ResetRunFlag() {
	m.Called()
}
