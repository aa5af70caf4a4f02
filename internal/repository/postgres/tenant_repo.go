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

type tenantRepo struct {
	db *sqlx.DB
}

// NewTenantRepo creates a new PostgreSQL-backed TenantRepository.
func NewTenantRepo(db *sqlx.DB) port.TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, tenant *domain.Tenant) error {
	tenant.ID = uuid.New()
	now := time.Now().UTC()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now
	if tenant.Status == "" {
		tenant.Status = domain.TenantActive
	}

	query := `INSERT INTO tenants
		(id, admin_id, property_id, name, email, phone, status, join_date, rent_amount, charges_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		tenant.ID, tenant.AdminID, tenant.PropertyID, tenant.Name, tenant.Email,
		tenant.Phone, tenant.Status, tenant.JoinDate, tenant.RentAmount,
		tenant.ChargesAmount, tenant.CreatedAt, tenant.UpdatedAt)
	if err != nil {
		return fmt.Errorf("tenantRepo.Create: %w", err)
	}
	return nil
}

func (r *tenantRepo) GetByID(ctx context.Context, adminID, tenantID uuid.UUID) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.GetContext(ctx, &tenant,
		"SELECT * FROM tenants WHERE id = $1 AND admin_id = $2", tenantID, adminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("tenantRepo.GetByID: %w", err)
	}
	return &tenant, nil
}

func (r *tenantRepo) ListByAdmin(ctx context.Context, adminID uuid.UUID, status domain.TenantStatus, offset, limit int) ([]domain.Tenant, int, error) {
	countQuery := "SELECT COUNT(*) FROM tenants WHERE admin_id = $1"
	listQuery := "SELECT * FROM tenants WHERE admin_id = $1"
	args := []interface{}{adminID}

	if status != "" {
		countQuery += " AND status = $2"
		listQuery += " AND status = $2"
		args = append(args, status)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("tenantRepo.ListByAdmin count: %w", err)
	}

	listQuery += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var tenants []domain.Tenant
	if err := r.db.SelectContext(ctx, &tenants, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("tenantRepo.ListByAdmin: %w", err)
	}
	return tenants, total, nil
}

func (r *tenantRepo) Update(ctx context.Context, tenant *domain.Tenant) error {
	tenant.UpdatedAt = time.Now().UTC()
	query := `UPDATE tenants SET property_id = $1, name = $2, email = $3, phone = $4, status = $5,
		join_date = $6, rent_amount = $7, charges_amount = $8, updated_at = $9
		WHERE id = $10 AND admin_id = $11`
	result, err := r.db.ExecContext(ctx, query,
		tenant.PropertyID, tenant.Name, tenant.Email, tenant.Phone, tenant.Status,
		tenant.JoinDate, tenant.RentAmount, tenant.ChargesAmount, tenant.UpdatedAt,
		tenant.ID, tenant.AdminID)
	if err != nil {
		return fmt.Errorf("tenantRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *tenantRepo) Delete(ctx context.Context, adminID, tenantID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM tenants WHERE id = $1 AND admin_id = $2", tenantID, adminID)
	if err != nil {
		return fmt.Errorf("tenantRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const activeTenanciesQuery = `SELECT
	t.id AS tenant_id,
	t.property_id,
	t.admin_id,
	t.name,
	t.email,
	t.rent_amount,
	t.charges_amount,
	p.monthly_rent AS property_rent
FROM tenants t
INNER JOIN properties p ON p.id = t.property_id
WHERE t.status = 'ACTIVE' AND t.join_date <= $1`

func (r *tenantRepo) FindActiveTenancies(ctx context.Context, cutoff time.Time, adminID *uuid.UUID) ([]domain.Tenancy, error) {
	query := activeTenanciesQuery
	args := []interface{}{cutoff}
	if adminID != nil {
		query += " AND t.admin_id = $2"
		args = append(args, *adminID)
	}
	// Stable order keeps per-tenant error reporting reproducible across runs.
	query += " ORDER BY t.join_date, t.id"

	var tenancies []domain.Tenancy
	if err := r.db.SelectContext(ctx, &tenancies, query, args...); err != nil {
		return nil, fmt.Errorf("tenantRepo.FindActiveTenancies: %w", err)
	}
	return tenancies, nil
}
