package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

// CreateTenantInput is the DTO for tenant creation.
type CreateTenantInput struct {
	PropertyID    uuid.UUID        `json:"property_id" binding:"required"`
	Name          string           `json:"name" binding:"required"`
	Email         string           `json:"email" binding:"required,email"`
	Phone         string           `json:"phone"`
	JoinDate      time.Time        `json:"join_date" binding:"required"`
	RentAmount    *decimal.Decimal `json:"rent_amount"`
	ChargesAmount *decimal.Decimal `json:"charges_amount"`
}

// UpdateTenantInput is the DTO for tenant updates.
type UpdateTenantInput struct {
	PropertyID    uuid.UUID           `json:"property_id" binding:"required"`
	Name          string              `json:"name" binding:"required"`
	Email         string              `json:"email" binding:"required,email"`
	Phone         string              `json:"phone"`
	Status        domain.TenantStatus `json:"status" binding:"required"`
	JoinDate      time.Time           `json:"join_date" binding:"required"`
	RentAmount    *decimal.Decimal    `json:"rent_amount"`
	ChargesAmount *decimal.Decimal    `json:"charges_amount"`
}

// TenantService manages admin-owned tenants (renters).
type TenantService interface {
	Create(ctx context.Context, adminID uuid.UUID, input CreateTenantInput) (*domain.Tenant, error)
	GetByID(ctx context.Context, adminID, tenantID uuid.UUID) (*domain.Tenant, error)
	List(ctx context.Context, adminID uuid.UUID, status domain.TenantStatus, offset, limit int) ([]domain.Tenant, int, error)
	Update(ctx context.Context, adminID, tenantID uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error)
	Delete(ctx context.Context, adminID, tenantID uuid.UUID) error
}

type tenantService struct {
	tenantRepo   port.TenantRepository
	propertyRepo port.PropertyRepository
}

// NewTenantService creates a new TenantService implementation.
func NewTenantService(tenantRepo port.TenantRepository, propertyRepo port.PropertyRepository) TenantService {
	return &tenantService{tenantRepo: tenantRepo, propertyRepo: propertyRepo}
}

func (s *tenantService) Create(ctx context.Context, adminID uuid.UUID, input CreateTenantInput) (*domain.Tenant, error) {
	// The property must belong to the same admin; bills generated later
	// carry all three ids and ownership has to be consistent across them.
	if _, err := s.propertyRepo.GetByID(ctx, adminID, input.PropertyID); err != nil {
		return nil, err
	}

	tenant := &domain.Tenant{
		AdminID:       adminID,
		PropertyID:    input.PropertyID,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Status:        domain.TenantActive,
		JoinDate:      input.JoinDate.UTC(),
		RentAmount:    input.RentAmount,
		ChargesAmount: input.ChargesAmount,
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, adminID, tenantID uuid.UUID) (*domain.Tenant, error) {
	return s.tenantRepo.GetByID(ctx, adminID, tenantID)
}

func (s *tenantService) List(ctx context.Context, adminID uuid.UUID, status domain.TenantStatus, offset, limit int) ([]domain.Tenant, int, error) {
	return s.tenantRepo.ListByAdmin(ctx, adminID, status, offset, limit)
}

func (s *tenantService) Update(ctx context.Context, adminID, tenantID uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, adminID, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.PropertyID != input.PropertyID {
		if _, err := s.propertyRepo.GetByID(ctx, adminID, input.PropertyID); err != nil {
			return nil, err
		}
	}

	tenant.PropertyID = input.PropertyID
	tenant.Name = input.Name
	tenant.Email = input.Email
	tenant.Phone = input.Phone
	tenant.Status = input.Status
	tenant.JoinDate = input.JoinDate.UTC()
	tenant.RentAmount = input.RentAmount
	tenant.ChargesAmount = input.ChargesAmount
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) Delete(ctx context.Context, adminID, tenantID uuid.UUID) error {
	return s.tenantRepo.Delete(ctx, adminID, tenantID)
}
