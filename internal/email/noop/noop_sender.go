package noop

import (
	"context"

	"github.com/sirupsen/logrus"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that only logs. It is the default
// provider: the system treats mail delivery as optional.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendPaymentReceipt(_ context.Context, toEmail, toName string, bill *domain.Bill) error {
	logrus.Infof("[NOOP EMAIL] Payment receipt for %s (%s): bill %s, %s %s",
		toName, toEmail, bill.ID, bill.Month, bill.TotalAmount)
	return nil
}

func (s *noopSender) SendBillNotice(_ context.Context, toEmail, toName string, bill *domain.Bill) error {
	logrus.Infof("[NOOP EMAIL] Bill notice for %s (%s): bill %s, %s %s due %s",
		toName, toEmail, bill.ID, bill.Month, bill.TotalAmount, bill.DueDate.Format("2006-01-02"))
	return nil
}
