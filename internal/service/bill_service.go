package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"rentdesk/internal/config"
	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

// Actor identifies the admin performing an operation. A super admin operates
// unscoped; everyone else is confined to rows they own.
type Actor struct {
	AdminID uuid.UUID
	Role    domain.AdminRole
}

// Scope returns the admin filter for repository lookups: nil for super
// admins, the actor's own id otherwise.
func (a Actor) Scope() *uuid.UUID {
	if a.Role == domain.RoleSuperAdmin {
		return nil
	}
	adminID := a.AdminID
	return &adminID
}

// CreateBillInput is the DTO for manual bill creation.
type CreateBillInput struct {
	TenantID uuid.UUID       `json:"tenant_id" binding:"required"`
	Month    domain.Month    `json:"month" binding:"required"`
	Rent     decimal.Decimal `json:"rent_amount" binding:"required"`
	Charges  decimal.Decimal `json:"charges"`
	DueDate  *time.Time      `json:"due_date"`
}

// BillService manages bill records and the payment transitions that keep the
// profit ledger consistent with bill status.
type BillService interface {
	List(ctx context.Context, actor Actor, filter port.BillFilter, offset, limit int) ([]domain.Bill, int, error)
	GetByID(ctx context.Context, actor Actor, billID uuid.UUID) (*domain.Bill, error)
	Create(ctx context.Context, actor Actor, input CreateBillInput) (*domain.Bill, error)
	Delete(ctx context.Context, actor Actor, billID uuid.UUID) error

	// MarkPaid flips a bill to PAID and credits the owning admin's profit
	// total atomically. The receipt email is best-effort.
	MarkPaid(ctx context.Context, actor Actor, billID uuid.UUID) (*domain.Bill, error)

	// UndoPayment is the exact inverse of MarkPaid.
	UndoPayment(ctx context.Context, actor Actor, billID uuid.UUID) (*domain.Bill, error)

	Profit(ctx context.Context, adminID uuid.UUID) (decimal.Decimal, error)
	ReconcileProfit(ctx context.Context, adminID uuid.UUID) (*domain.ProfitReconciliation, error)
}

type billService struct {
	billRepo   port.BillRepository
	payments   port.PaymentLedger
	profitRepo port.ProfitRepository
	tenantRepo port.TenantRepository
	email      port.EmailSender
	clock      port.Clock
	cfg        config.BillingConfig
}

// NewBillService creates a new BillService implementation.
func NewBillService(
	billRepo port.BillRepository,
	payments port.PaymentLedger,
	profitRepo port.ProfitRepository,
	tenantRepo port.TenantRepository,
	email port.EmailSender,
	clock port.Clock,
	cfg config.BillingConfig,
) BillService {
	return &billService{
		billRepo:   billRepo,
		payments:   payments,
		profitRepo: profitRepo,
		tenantRepo: tenantRepo,
		email:      email,
		clock:      clock,
		cfg:        cfg,
	}
}

func (s *billService) List(ctx context.Context, actor Actor, filter port.BillFilter, offset, limit int) ([]domain.Bill, int, error) {
	if actor.Role != domain.RoleSuperAdmin {
		adminID := actor.AdminID
		filter.AdminID = &adminID
	}
	return s.billRepo.List(ctx, filter, offset, limit)
}

func (s *billService) GetByID(ctx context.Context, actor Actor, billID uuid.UUID) (*domain.Bill, error) {
	return s.billRepo.GetByID(ctx, billID, actor.Scope())
}

func (s *billService) Create(ctx context.Context, actor Actor, input CreateBillInput) (*domain.Bill, error) {
	// Manual creation obeys the same rules as generated bills: the tenant
	// must be owned by the acting admin and the total must be positive.
	tenant, err := s.tenantRepo.GetByID(ctx, actor.AdminID, input.TenantID)
	if err != nil {
		return nil, err
	}

	charges := input.Charges
	total := input.Rent.Add(charges)
	if !total.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	dueDate := input.Month.Next().FirstDay().AddDate(0, 0, s.cfg.DueDateOffsetDays)
	if input.DueDate != nil {
		dueDate = input.DueDate.UTC()
	}

	bill := &domain.Bill{
		TenantID:    tenant.ID,
		PropertyID:  tenant.PropertyID,
		AdminID:     tenant.AdminID,
		Month:       input.Month,
		RentAmount:  input.Rent,
		Charges:     charges,
		TotalAmount: total,
		DueDate:     dueDate,
		BillDate:    s.clock.Now(),
		Status:      domain.BillPending,
	}
	if err := s.billRepo.Insert(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *billService) Delete(ctx context.Context, actor Actor, billID uuid.UUID) error {
	return s.billRepo.Delete(ctx, billID, actor.Scope())
}

func (s *billService) MarkPaid(ctx context.Context, actor Actor, billID uuid.UUID) (*domain.Bill, error) {
	bill, newTotal, err := s.payments.MarkPaid(ctx, billID, actor.Scope(), s.clock.Now())
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"bill_id":  bill.ID.String(),
		"admin_id": bill.AdminID.String(),
		"amount":   bill.TotalAmount.String(),
		"profit":   newTotal.String(),
	}).Info("bill marked paid")

	s.sendReceipt(ctx, bill)
	return bill, nil
}

func (s *billService) UndoPayment(ctx context.Context, actor Actor, billID uuid.UUID) (*domain.Bill, error) {
	bill, newTotal, err := s.payments.UndoPayment(ctx, billID, actor.Scope())
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"bill_id":  bill.ID.String(),
		"admin_id": bill.AdminID.String(),
		"amount":   bill.TotalAmount.String(),
		"profit":   newTotal.String(),
	}).Info("bill payment undone")
	return bill, nil
}

// sendReceipt emails the tenant a payment receipt. Failures are logged and
// swallowed: the payment is already committed and must not be unwound over
// mail delivery.
func (s *billService) sendReceipt(ctx context.Context, bill *domain.Bill) {
	tenant, err := s.tenantRepo.GetByID(ctx, bill.AdminID, bill.TenantID)
	if err != nil {
		logrus.Warnf("receipt email: tenant lookup failed for bill %s: %v", bill.ID, err)
		return
	}
	if err := s.email.SendPaymentReceipt(ctx, tenant.Email, tenant.Name, bill); err != nil {
		logrus.Warnf("receipt email: send failed for bill %s: %v", bill.ID, err)
	}
}

func (s *billService) Profit(ctx context.Context, adminID uuid.UUID) (decimal.Decimal, error) {
	return s.profitRepo.GetTotal(ctx, adminID)
}

func (s *billService) ReconcileProfit(ctx context.Context, adminID uuid.UUID) (*domain.ProfitReconciliation, error) {
	total, err := s.profitRepo.GetTotal(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("bill.ReconcileProfit: %w", err)
	}
	recomputed, err := s.profitRepo.SumPaidBills(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("bill.ReconcileProfit: %w", err)
	}

	drift := total.Sub(recomputed)
	return &domain.ProfitReconciliation{
		AdminID:       adminID,
		LedgerTotal:   total,
		RecomputedSum: recomputed,
		Drift:         drift,
		Consistent:    drift.IsZero(),
	}, nil
}
