package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentdesk/internal/domain"
)

// BillFilter narrows bill listings. Zero values mean "no filter"; a nil
// AdminID means all admins (super admin scope).
type BillFilter struct {
	AdminID *uuid.UUID
	Month   domain.Month
	Status  domain.BillStatus
}

// BillRepository defines the contract for bill persistence.
type BillRepository interface {
	// Insert creates a bill row. A (tenant_id, bill_month, admin_id)
	// collision returns domain.ErrDuplicateBill; the unique index closes the
	// race a FindForMonth-then-Insert sequence would otherwise leave open.
	Insert(ctx context.Context, bill *domain.Bill) error

	// FindForMonth is the generation engine's idempotency probe.
	FindForMonth(ctx context.Context, tenantID uuid.UUID, month domain.Month, adminID uuid.UUID) (*domain.Bill, error)

	// GetByID looks up a bill scoped to one admin when adminID is non-nil.
	// "doesn't exist" and "not yours" both surface as domain.ErrNotFound.
	GetByID(ctx context.Context, billID uuid.UUID, adminID *uuid.UUID) (*domain.Bill, error)

	List(ctx context.Context, filter BillFilter, offset, limit int) ([]domain.Bill, int, error)
	CountForMonth(ctx context.Context, month domain.Month, adminID *uuid.UUID) (int, error)
	Delete(ctx context.Context, billID uuid.UUID, adminID *uuid.UUID) error
}

// PaymentLedger performs the bill status flip and the profit mutation as one
// atomic unit. A bill flip without the matching ledger movement (or the
// reverse) is a consistency violation, so both live in a single transaction
// behind this port.
type PaymentLedger interface {
	// MarkPaid transitions the bill to PAID, sets payment_date, and credits
	// the owning admin's profit total by the bill amount. adminID scopes the
	// lookup (nil for super admin); the credit always goes to the bill's
	// owner. Returns the updated bill and the owner's new total.
	MarkPaid(ctx context.Context, billID uuid.UUID, adminID *uuid.UUID, paidAt time.Time) (*domain.Bill, decimal.Decimal, error)

	// UndoPayment reverts a PAID bill to PENDING, clears payment_date, and
	// debits the owning admin's profit total by the same amount.
	UndoPayment(ctx context.Context, billID uuid.UUID, adminID *uuid.UUID) (*domain.Bill, decimal.Decimal, error)
}

// ProfitRepository reads the per-admin profit accumulator.
type ProfitRepository interface {
	GetTotal(ctx context.Context, adminID uuid.UUID) (decimal.Decimal, error)

	// SumPaidBills recomputes the total from bill rows for reconciliation.
	// It is a full scan of the admin's bills and not part of any hot path.
	SumPaidBills(ctx context.Context, adminID uuid.UUID) (decimal.Decimal, error)
}
