package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Admin represents a back-office operator. Every property, tenant, and bill
// belongs to exactly one admin; a super admin may act across all of them.
type Admin struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         AdminRole `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Property represents a rentable unit owned by an admin.
type Property struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	AdminID     uuid.UUID       `db:"admin_id" json:"admin_id"`
	Name        string          `db:"name" json:"name"`
	Address     string          `db:"address" json:"address"`
	MonthlyRent decimal.Decimal `db:"monthly_rent" json:"monthly_rent"`
	IsActive    bool            `db:"is_active" json:"is_active"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// Tenant represents a renter occupying a property. RentAmount and
// ChargesAmount are optional overrides; generation falls back to the
// property's monthly rent and zero charges when unset.
type Tenant struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	AdminID       uuid.UUID        `db:"admin_id" json:"admin_id"`
	PropertyID    uuid.UUID        `db:"property_id" json:"property_id"`
	Name          string           `db:"name" json:"name"`
	Email         string           `db:"email" json:"email"`
	Phone         string           `db:"phone" json:"phone"`
	Status        TenantStatus     `db:"status" json:"status"`
	JoinDate      time.Time        `db:"join_date" json:"join_date"`
	RentAmount    *decimal.Decimal `db:"rent_amount" json:"rent_amount"`
	ChargesAmount *decimal.Decimal `db:"charges_amount" json:"charges_amount"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`
}

// Tenancy is the read-only projection the generation engine works from:
// one active tenant joined with their property's rent.
type Tenancy struct {
	TenantID      uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	PropertyID    uuid.UUID        `db:"property_id" json:"property_id"`
	AdminID       uuid.UUID        `db:"admin_id" json:"admin_id"`
	Name          string           `db:"name" json:"name"`
	Email         string           `db:"email" json:"email"`
	RentAmount    *decimal.Decimal `db:"rent_amount" json:"rent_amount"`
	ChargesAmount *decimal.Decimal `db:"charges_amount" json:"charges_amount"`
	PropertyRent  decimal.Decimal  `db:"property_rent" json:"property_rent"`
}

// EffectiveRent resolves the tenant's rent override against the property rent.
func (t Tenancy) EffectiveRent() decimal.Decimal {
	if t.RentAmount != nil && !t.RentAmount.IsZero() {
		return *t.RentAmount
	}
	return t.PropertyRent
}

// EffectiveCharges resolves the optional charges amount, defaulting to zero.
func (t Tenancy) EffectiveCharges() decimal.Decimal {
	if t.ChargesAmount != nil {
		return *t.ChargesAmount
	}
	return decimal.Zero
}

// Bill represents one month's rent bill for a tenant. At most one bill exists
// per (tenant_id, bill_month, admin_id); the bills table enforces it with a
// unique index. TotalAmount is persisted at generation time, not recomputed
// on read.
type Bill struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	TenantID    uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	PropertyID  uuid.UUID       `db:"property_id" json:"property_id"`
	AdminID     uuid.UUID       `db:"admin_id" json:"admin_id"`
	Month       Month           `db:"bill_month" json:"month"`
	RentAmount  decimal.Decimal `db:"rent_amount" json:"rent_amount"`
	Charges     decimal.Decimal `db:"charges" json:"charges"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	DueDate     time.Time       `db:"due_date" json:"due_date"`
	BillDate    time.Time       `db:"bill_date" json:"bill_date"`
	Status      BillStatus      `db:"status" json:"status"`
	PaymentDate *time.Time      `db:"payment_date" json:"payment_date"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// ProfitEntry is the running total of paid bills for one admin. It is an
// accumulator mutated only by the payment transitions, never recomputed by
// normal reads.
type ProfitEntry struct {
	AdminID   uuid.UUID       `db:"admin_id" json:"admin_id"`
	Total     decimal.Decimal `db:"total" json:"total"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// GenerationFailure records a single tenant's failure during a generation run.
type GenerationFailure struct {
	TenantName  string `json:"tenant_name"`
	TenantEmail string `json:"tenant_email"`
	Error       string `json:"error"`
}

// GenerationReport summarizes one generation run. A run reports success even
// when individual tenants failed; callers inspect Errors and ErrorDetails.
type GenerationReport struct {
	Month          Month               `json:"month"`
	TotalTenants   int                 `json:"total_tenants"`
	BillsGenerated int                 `json:"bills_generated"`
	BillsSkipped   int                 `json:"bills_skipped"`
	Errors         int                 `json:"errors"`
	ErrorDetails   []GenerationFailure `json:"error_details"`
}

// GenerationStats is the read-only view of how far a month's generation has
// progressed, without mutating anything.
type GenerationStats struct {
	Month           Month `json:"month"`
	EligibleTenants int   `json:"eligible_tenants"`
	ExistingBills   int   `json:"existing_bills"`
	MissingBills    int   `json:"missing_bills"`
}

// RunStatus describes the run coordinator's current state.
type RunStatus struct {
	IsRunning bool       `json:"is_running"`
	Month     string     `json:"month,omitempty"`
	AdminID   *uuid.UUID `json:"admin_id,omitempty"`
	StartedAt *time.Time `json:"started_at,omitempty"`
}

// SchedulerStatus extends RunStatus with the scheduler's computed timings.
// LastRun is in-memory only; bill existence remains the source of truth for
// whether a month has been generated.
type SchedulerStatus struct {
	RunStatus
	NextRun time.Time  `json:"next_run"`
	LastRun *time.Time `json:"last_run,omitempty"`
}

// ProfitReconciliation compares the accumulator against a recomputed sum of
// paid bills.
type ProfitReconciliation struct {
	AdminID       uuid.UUID       `json:"admin_id"`
	LedgerTotal   decimal.Decimal `json:"ledger_total"`
	RecomputedSum decimal.Decimal `json:"recomputed_sum"`
	Drift         decimal.Decimal `json:"drift"`
	Consistent    bool            `json:"consistent"`
}

// ArchivedReport identifies an uploaded bill register. URL is a short-lived
// presigned download link and may be empty when presigning fails.
type ArchivedReport struct {
	Key string `json:"key"`
	URL string `json:"url,omitempty"`
}
