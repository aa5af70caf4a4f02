package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

// CreatePropertyInput is the DTO for property creation.
type CreatePropertyInput struct {
	Name        string          `json:"name" binding:"required"`
	Address     string          `json:"address" binding:"required"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" binding:"required"`
}

// UpdatePropertyInput is the DTO for property updates.
type UpdatePropertyInput struct {
	Name        string          `json:"name" binding:"required"`
	Address     string          `json:"address" binding:"required"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" binding:"required"`
	IsActive    bool            `json:"is_active"`
}

// PropertyService manages admin-owned properties.
type PropertyService interface {
	Create(ctx context.Context, adminID uuid.UUID, input CreatePropertyInput) (*domain.Property, error)
	GetByID(ctx context.Context, adminID, propertyID uuid.UUID) (*domain.Property, error)
	List(ctx context.Context, actor Actor, offset, limit int) ([]domain.Property, int, error)
	Update(ctx context.Context, adminID, propertyID uuid.UUID, input UpdatePropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, adminID, propertyID uuid.UUID) error
}

type propertyService struct {
	propertyRepo port.PropertyRepository
}

// NewPropertyService creates a new PropertyService implementation.
func NewPropertyService(propertyRepo port.PropertyRepository) PropertyService {
	return &propertyService{propertyRepo: propertyRepo}
}

func (s *propertyService) Create(ctx context.Context, adminID uuid.UUID, input CreatePropertyInput) (*domain.Property, error) {
	if !input.MonthlyRent.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	property := &domain.Property{
		AdminID:     adminID,
		Name:        input.Name,
		Address:     input.Address,
		MonthlyRent: input.MonthlyRent,
		IsActive:    true,
	}
	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) GetByID(ctx context.Context, adminID, propertyID uuid.UUID) (*domain.Property, error) {
	return s.propertyRepo.GetByID(ctx, adminID, propertyID)
}

func (s *propertyService) List(ctx context.Context, actor Actor, offset, limit int) ([]domain.Property, int, error) {
	if actor.Role == domain.RoleSuperAdmin {
		return s.propertyRepo.ListAll(ctx, offset, limit)
	}
	return s.propertyRepo.ListByAdmin(ctx, actor.AdminID, offset, limit)
}

func (s *propertyService) Update(ctx context.Context, adminID, propertyID uuid.UUID, input UpdatePropertyInput) (*domain.Property, error) {
	if !input.MonthlyRent.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	property, err := s.propertyRepo.GetByID(ctx, adminID, propertyID)
	if err != nil {
		return nil, err
	}
	property.Name = input.Name
	property.Address = input.Address
	property.MonthlyRent = input.MonthlyRent
	property.IsActive = input.IsActive
	if err := s.propertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) Delete(ctx context.Context, adminID, propertyID uuid.UUID) error {
	return s.propertyRepo.Delete(ctx, adminID, propertyID)
}
