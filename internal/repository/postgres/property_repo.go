package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

type propertyRepo struct {
	db *sqlx.DB
}

// NewPropertyRepo creates a new PostgreSQL-backed PropertyRepository.
func NewPropertyRepo(db *sqlx.DB) port.PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, property *domain.Property) error {
	property.ID = uuid.New()
	now := time.Now().UTC()
	property.CreatedAt = now
	property.UpdatedAt = now

	query := `INSERT INTO properties (id, admin_id, name, address, monthly_rent, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		property.ID, property.AdminID, property.Name, property.Address,
		property.MonthlyRent, property.IsActive, property.CreatedAt, property.UpdatedAt)
	if err != nil {
		return fmt.Errorf("propertyRepo.Create: %w", err)
	}
	return nil
}

func (r *propertyRepo) GetByID(ctx context.Context, adminID, propertyID uuid.UUID) (*domain.Property, error) {
	var property domain.Property
	err := r.db.GetContext(ctx, &property,
		"SELECT * FROM properties WHERE id = $1 AND admin_id = $2", propertyID, adminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("propertyRepo.GetByID: %w", err)
	}
	return &property, nil
}

func (r *propertyRepo) ListByAdmin(ctx context.Context, adminID uuid.UUID, offset, limit int) ([]domain.Property, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM properties WHERE admin_id = $1", adminID)
	if err != nil {
		return nil, 0, fmt.Errorf("propertyRepo.ListByAdmin count: %w", err)
	}

	var properties []domain.Property
	err = r.db.SelectContext(ctx, &properties,
		"SELECT * FROM properties WHERE admin_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		adminID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("propertyRepo.ListByAdmin: %w", err)
	}
	return properties, total, nil
}

func (r *propertyRepo) ListAll(ctx context.Context, offset, limit int) ([]domain.Property, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM properties"); err != nil {
		return nil, 0, fmt.Errorf("propertyRepo.ListAll count: %w", err)
	}

	var properties []domain.Property
	err := r.db.SelectContext(ctx, &properties,
		"SELECT * FROM properties ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("propertyRepo.ListAll: %w", err)
	}
	return properties, total, nil
}

func (r *propertyRepo) Update(ctx context.Context, property *domain.Property) error {
	property.UpdatedAt = time.Now().UTC()
	query := `UPDATE properties SET name = $1, address = $2, monthly_rent = $3, is_active = $4, updated_at = $5
		WHERE id = $6 AND admin_id = $7`
	result, err := r.db.ExecContext(ctx, query,
		property.Name, property.Address, property.MonthlyRent, property.IsActive,
		property.UpdatedAt, property.ID, property.AdminID)
	if err != nil {
		return fmt.Errorf("propertyRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *propertyRepo) Delete(ctx context.Context, adminID, propertyID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM properties WHERE id = $1 AND admin_id = $2", propertyID, adminID)
	if err != nil {
		return fmt.Errorf("propertyRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
