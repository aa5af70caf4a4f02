package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

type adminRepo struct {
	db *sqlx.DB
}

// NewAdminRepo creates a new PostgreSQL-backed AdminRepository.
func NewAdminRepo(db *sqlx.DB) port.AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	admin.ID = uuid.New()
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	query := `INSERT INTO admins (id, name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		admin.ID, admin.Name, admin.Email, admin.PasswordHash, admin.Role,
		admin.IsActive, admin.CreatedAt, admin.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "email") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("adminRepo.Create: %w", err)
	}
	return nil
}

func (r *adminRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	var admin domain.Admin
	err := r.db.GetContext(ctx, &admin, "SELECT * FROM admins WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("adminRepo.GetByID: %w", err)
	}
	return &admin, nil
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var admin domain.Admin
	err := r.db.GetContext(ctx, &admin, "SELECT * FROM admins WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("adminRepo.GetByEmail: %w", err)
	}
	return &admin, nil
}

func (r *adminRepo) List(ctx context.Context, offset, limit int) ([]domain.Admin, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM admins"); err != nil {
		return nil, 0, fmt.Errorf("adminRepo.List count: %w", err)
	}

	var admins []domain.Admin
	err := r.db.SelectContext(ctx, &admins,
		"SELECT * FROM admins ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("adminRepo.List: %w", err)
	}
	return admins, total, nil
}
