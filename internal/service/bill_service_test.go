package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
	"rentdesk/internal/service"
	"rentdesk/mocks"
)

type billFixture struct {
	billRepo   *mocks.MockBillRepo
	payments   *mocks.MockPaymentLedger
	profitRepo *mocks.MockProfitRepo
	tenantRepo *mocks.MockTenantRepo
	email      *mocks.MockEmailSender
	clock      *mocks.FixedClock
	svc        service.BillService
}

func newBillFixture(t *testing.T) *billFixture {
	t.Helper()
	f := &billFixture{
		billRepo:   new(mocks.MockBillRepo),
		payments:   new(mocks.MockPaymentLedger),
		profitRepo: new(mocks.MockProfitRepo),
		tenantRepo: new(mocks.MockTenantRepo),
		email:      new(mocks.MockEmailSender),
		clock:      mocks.NewFixedClock(time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)),
	}
	f.svc = service.NewBillService(
		f.billRepo, f.payments, f.profitRepo, f.tenantRepo, f.email, f.clock, testBillingConfig(),
	)
	return f
}

func paidBill(adminID uuid.UUID, amount decimal.Decimal) *domain.Bill {
	paidAt := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	return &domain.Bill{
		ID:          uuid.New(),
		TenantID:    uuid.New(),
		PropertyID:  uuid.New(),
		AdminID:     adminID,
		Month:       domain.Month{Year: 2025, Month: time.June},
		RentAmount:  amount,
		TotalAmount: amount,
		Status:      domain.BillPaid,
		PaymentDate: &paidAt,
	}
}

func TestBillService_MarkPaid(t *testing.T) {
	f := newBillFixture(t)

	adminID := uuid.New()
	actor := service.Actor{AdminID: adminID, Role: domain.RoleAdmin}
	bill := paidBill(adminID, decimal.NewFromFloat(950.00))
	tenant := &domain.Tenant{ID: bill.TenantID, AdminID: adminID, Name: "Alice", Email: "alice@example.com"}

	f.payments.On("MarkPaid", mock.Anything, bill.ID, &adminID, f.clock.Now()).
		Return(bill, decimal.NewFromFloat(950.00), nil)
	f.tenantRepo.On("GetByID", mock.Anything, adminID, bill.TenantID).Return(tenant, nil)
	f.email.On("SendPaymentReceipt", mock.Anything, "alice@example.com", "Alice", bill).Return(nil)

	result, err := f.svc.MarkPaid(context.Background(), actor, bill.ID)

	assert.NoError(t, err)
	assert.Equal(t, domain.BillPaid, result.Status)
	f.payments.AssertExpectations(t)
	f.email.AssertExpectations(t)
}

func TestBillService_MarkPaid_ReceiptFailureDoesNotFailPayment(t *testing.T) {
	f := newBillFixture(t)

	adminID := uuid.New()
	actor := service.Actor{AdminID: adminID, Role: domain.RoleAdmin}
	bill := paidBill(adminID, decimal.NewFromInt(1200))

	f.payments.On("MarkPaid", mock.Anything, bill.ID, &adminID, f.clock.Now()).
		Return(bill, decimal.NewFromInt(1200), nil)
	f.tenantRepo.On("GetByID", mock.Anything, adminID, bill.TenantID).
		Return(&domain.Tenant{ID: bill.TenantID, Email: "a@b.c", Name: "A"}, nil)
	f.email.On("SendPaymentReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	_, err := f.svc.MarkPaid(context.Background(), actor, bill.ID)

	assert.NoError(t, err, "payment is committed before the receipt is attempted")
}

func TestBillService_MarkPaid_AlreadyPaid(t *testing.T) {
	f := newBillFixture(t)

	adminID := uuid.New()
	actor := service.Actor{AdminID: adminID, Role: domain.RoleAdmin}
	billID := uuid.New()

	f.payments.On("MarkPaid", mock.Anything, billID, &adminID, f.clock.Now()).
		Return(nil, decimal.Zero, domain.ErrBillAlreadyPaid)

	_, err := f.svc.MarkPaid(context.Background(), actor, billID)

	assert.ErrorIs(t, err, domain.ErrBillAlreadyPaid)
	f.email.AssertNotCalled(t, "SendPaymentReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBillService_MarkPaid_SuperAdminUnscoped(t *testing.T) {
	f := newBillFixture(t)

	// The super admin acts on another admin's bill; the lookup is unscoped
	// and the credit lands on the bill's owner.
	ownerID := uuid.New()
	actor := service.Actor{AdminID: uuid.New(), Role: domain.RoleSuperAdmin}
	bill := paidBill(ownerID, decimal.NewFromInt(800))

	f.payments.On("MarkPaid", mock.Anything, bill.ID, (*uuid.UUID)(nil), f.clock.Now()).
		Return(bill, decimal.NewFromInt(800), nil)
	f.tenantRepo.On("GetByID", mock.Anything, ownerID, bill.TenantID).
		Return(&domain.Tenant{ID: bill.TenantID, Email: "t@x.y", Name: "T"}, nil)
	f.email.On("SendPaymentReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.MarkPaid(context.Background(), actor, bill.ID)

	assert.NoError(t, err)
	assert.Equal(t, ownerID, result.AdminID)
	f.payments.AssertExpectations(t)
}

func TestBillService_UndoPayment(t *testing.T) {
	f := newBillFixture(t)

	adminID := uuid.New()
	actor := service.Actor{AdminID: adminID, Role: domain.RoleAdmin}
	bill := paidBill(adminID, decimal.NewFromFloat(950.00))
	bill.Status = domain.BillPending
	bill.PaymentDate = nil

	f.payments.On("UndoPayment", mock.Anything, bill.ID, &adminID).
		Return(bill, decimal.Zero, nil)

	result, err := f.svc.UndoPayment(context.Background(), actor, bill.ID)

	assert.NoError(t, err)
	assert.Equal(t, domain.BillPending, result.Status)
	assert.Nil(t, result.PaymentDate)
	f.email.AssertNotCalled(t, "SendPaymentReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBillService_UndoPayment_NotPaid(t *testing.T) {
	f := newBillFixture(t)

	adminID := uuid.New()
	actor := service.Actor{AdminID: adminID, Role: domain.RoleAdmin}
	billID := uuid.New()

	f.payments.On("UndoPayment", mock.Anything, billID, &adminID).
		Return(nil, decimal.Zero, domain.ErrBillNotPaid)

	_, err := f.svc.UndoPayment(context.Background(), actor, billID)

	assert.ErrorIs(t, err, domain.ErrBillNotPaid)
}

func TestBillService_Create(t *testing.T) {
	f := newBillFixture(t)

	adminID := uuid.New()
	actor := service.Actor{AdminID: adminID, Role: domain.RoleAdmin}
	tenant := &domain.Tenant{
		ID:         uuid.New(),
		AdminID:    adminID,
		PropertyID: uuid.New(),
		Name:       "Alice",
	}

	f.tenantRepo.On("GetByID", mock.Anything, adminID, tenant.ID).Return(tenant, nil)

	var inserted *domain.Bill
	f.billRepo.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Bill")).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(*domain.Bill) }).
		Return(nil)

	bill, err := f.svc.Create(context.Background(), actor, service.CreateBillInput{
		TenantID: tenant.ID,
		Month:    domain.Month{Year: 2025, Month: time.June},
		Rent:     decimal.NewFromInt(1100),
		Charges:  decimal.NewFromInt(100),
	})

	assert.NoError(t, err)
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, domain.BillPending, bill.Status)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), bill.DueDate)
	assert.Equal(t, tenant.PropertyID, inserted.PropertyID)
}

func TestBillService_Create_RejectsNonPositiveTotal(t *testing.T) {
	f := newBillFixture(t)

	adminID := uuid.New()
	actor := service.Actor{AdminID: adminID, Role: domain.RoleAdmin}
	tenant := &domain.Tenant{ID: uuid.New(), AdminID: adminID, PropertyID: uuid.New()}

	f.tenantRepo.On("GetByID", mock.Anything, adminID, tenant.ID).Return(tenant, nil)

	_, err := f.svc.Create(context.Background(), actor, service.CreateBillInput{
		TenantID: tenant.ID,
		Month:    domain.Month{Year: 2025, Month: time.June},
		Rent:     decimal.Zero,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	f.billRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestBillService_Create_UnknownTenant(t *testing.T) {
	f := newBillFixture(t)

	adminID := uuid.New()
	actor := service.Actor{AdminID: adminID, Role: domain.RoleAdmin}
	tenantID := uuid.New()

	f.tenantRepo.On("GetByID", mock.Anything, adminID, tenantID).
		Return(nil, domain.ErrNotFound)

	_, err := f.svc.Create(context.Background(), actor, service.CreateBillInput{
		TenantID: tenantID,
		Month:    domain.Month{Year: 2025, Month: time.June},
		Rent:     decimal.NewFromInt(1000),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBillService_List_ForcesScopeForPlainAdmin(t *testing.T) {
	f := newBillFixture(t)

	adminID := uuid.New()
	actor := service.Actor{AdminID: adminID, Role: domain.RoleAdmin}

	f.billRepo.On("List", mock.Anything, mock.MatchedBy(func(filter port.BillFilter) bool {
		return filter.AdminID != nil && *filter.AdminID == adminID
	}), 0, 20).Return([]domain.Bill{}, 0, nil)

	_, _, err := f.svc.List(context.Background(), actor, port.BillFilter{}, 0, 20)

	assert.NoError(t, err)
	f.billRepo.AssertExpectations(t)
}

func TestBillService_List_SuperAdminUnscoped(t *testing.T) {
	f := newBillFixture(t)

	actor := service.Actor{AdminID: uuid.New(), Role: domain.RoleSuperAdmin}

	f.billRepo.On("List", mock.Anything, mock.MatchedBy(func(filter port.BillFilter) bool {
		return filter.AdminID == nil
	}), 0, 20).Return([]domain.Bill{}, 0, nil)

	_, _, err := f.svc.List(context.Background(), actor, port.BillFilter{}, 0, 20)

	assert.NoError(t, err)
	f.billRepo.AssertExpectations(t)
}

func TestBillService_ReconcileProfit(t *testing.T) {
	f := newBillFixture(t)

	adminID := uuid.New()

	f.profitRepo.On("GetTotal", mock.Anything, adminID).
		Return(decimal.NewFromFloat(2150.00), nil)
	f.profitRepo.On("SumPaidBills", mock.Anything, adminID).
		Return(decimal.NewFromFloat(2150.00), nil)

	result, err := f.svc.ReconcileProfit(context.Background(), adminID)

	assert.NoError(t, err)
	assert.True(t, result.Consistent)
	assert.True(t, result.Drift.IsZero())
}

func TestBillService_ReconcileProfit_DetectsDrift(t *testing.T) {
	f := newBillFixture(t)

	adminID := uuid.New()

	f.profitRepo.On("GetTotal", mock.Anything, adminID).
		Return(decimal.NewFromFloat(2150.00), nil)
	f.profitRepo.On("SumPaidBills", mock.Anything, adminID).
		Return(decimal.NewFromFloat(1200.00), nil)

	result, err := f.svc.ReconcileProfit(context.Background(), adminID)

	assert.NoError(t, err)
	assert.False(t, result.Consistent)
	assert.True(t, result.Drift.Equal(decimal.NewFromFloat(950.00)))
}
