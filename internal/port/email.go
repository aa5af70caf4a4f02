package port

import (
	"context"

	"rentdesk/internal/domain"
)

// EmailSender defines the contract for outbound mail. The default provider
// is a no-op; delivery failures must never fail the triggering operation.
type EmailSender interface {
	SendPaymentReceipt(ctx context.Context, toEmail, toName string, bill *domain.Bill) error
	SendBillNotice(ctx context.Context, toEmail, toName string, bill *domain.Bill) error
}
