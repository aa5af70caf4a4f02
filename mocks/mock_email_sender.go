package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rentdesk/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendPaymentReceipt(ctx context.Context, toEmail, toName string, bill *domain.Bill) error {
	args := m.Called(ctx, toEmail, toName, bill)
	return args.Error(0)
}

func (m *MockEmailSender) SendBillNotice(ctx context.Context, toEmail, toName string, bill *domain.Bill) error {
	args := m.Called(ctx, toEmail, toName, bill)
	return args.Error(0)
}
