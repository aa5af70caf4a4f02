package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

// CreateAdminInput is the DTO for provisioning an admin account.
type CreateAdminInput struct {
	Name     string           `json:"name" binding:"required"`
	Email    string           `json:"email" binding:"required,email"`
	Password string           `json:"password" binding:"required,min=8"`
	Role     domain.AdminRole `json:"role" binding:"required"`
}

// AdminService provisions and lists admin accounts. Only super admins reach
// these operations; the router enforces that.
type AdminService interface {
	Create(ctx context.Context, input CreateAdminInput) (*domain.Admin, error)
	List(ctx context.Context, offset, limit int) ([]domain.Admin, int, error)
}

type adminService struct {
	adminRepo port.AdminRepository
}

// NewAdminService creates a new AdminService implementation.
func NewAdminService(adminRepo port.AdminRepository) AdminService {
	return &adminService{adminRepo: adminRepo}
}

func (s *adminService) Create(ctx context.Context, input CreateAdminInput) (*domain.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("admin.Create: hash password: %w", err)
	}

	admin := &domain.Admin{
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		Role:         input.Role,
		IsActive:     true,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *adminService) List(ctx context.Context, offset, limit int) ([]domain.Admin, int, error) {
	return s.adminRepo.List(ctx, offset, limit)
}
