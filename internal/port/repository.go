package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentdesk/internal/domain"
)

// AdminRepository defines the contract for admin account persistence.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	List(ctx context.Context, offset, limit int) ([]domain.Admin, int, error)
}

// PropertyRepository defines the contract for property persistence.
// adminID scopes every query; a nil-scope variant is not offered. Super
// admins list through ListAll.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, adminID, propertyID uuid.UUID) (*domain.Property, error)
	ListByAdmin(ctx context.Context, adminID uuid.UUID, offset, limit int) ([]domain.Property, int, error)
	ListAll(ctx context.Context, offset, limit int) ([]domain.Property, int, error)
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, adminID, propertyID uuid.UUID) error
}

// TenantRepository defines the contract for tenant (renter) persistence.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, adminID, tenantID uuid.UUID) (*domain.Tenant, error)
	ListByAdmin(ctx context.Context, adminID uuid.UUID, status domain.TenantStatus, offset, limit int) ([]domain.Tenant, int, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	Delete(ctx context.Context, adminID, tenantID uuid.UUID) error

	// FindActiveTenancies returns the generation engine's working set: every
	// ACTIVE tenant whose join date is on or before cutoff, joined with the
	// property rent. adminID narrows the scope to one admin when non-nil.
	// Ordering is stable (join date, then tenant id) so per-tenant error
	// reporting is reproducible.
	FindActiveTenancies(ctx context.Context, cutoff time.Time, adminID *uuid.UUID) ([]domain.Tenancy, error)
}
