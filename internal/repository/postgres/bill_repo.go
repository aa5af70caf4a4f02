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

type billRepo struct {
	db *sqlx.DB
}

// NewBillRepo creates a new PostgreSQL-backed BillRepository.
func NewBillRepo(db *sqlx.DB) port.BillRepository {
	return &billRepo{db: db}
}

func (r *billRepo) Insert(ctx context.Context, bill *domain.Bill) error {
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}
	now := time.Now().UTC()
	bill.CreatedAt = now
	bill.UpdatedAt = now
	if bill.Status == "" {
		bill.Status = domain.BillPending
	}

	query := `INSERT INTO bills
		(id, tenant_id, property_id, admin_id, bill_month, rent_amount, charges, total_amount,
		 due_date, bill_date, status, payment_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		bill.ID, bill.TenantID, bill.PropertyID, bill.AdminID, bill.Month,
		bill.RentAmount, bill.Charges, bill.TotalAmount, bill.DueDate, bill.BillDate,
		bill.Status, bill.PaymentDate, bill.CreatedAt, bill.UpdatedAt)
	if err != nil {
		// The unique index on (tenant_id, bill_month, admin_id) is the real
		// idempotency guarantee; the application-level probe only avoids the
		// common case.
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateBill
		}
		return fmt.Errorf("billRepo.Insert: %w", err)
	}
	return nil
}

func (r *billRepo) FindForMonth(ctx context.Context, tenantID uuid.UUID, month domain.Month, adminID uuid.UUID) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.db.GetContext(ctx, &bill,
		"SELECT * FROM bills WHERE tenant_id = $1 AND bill_month = $2 AND admin_id = $3",
		tenantID, month, adminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("billRepo.FindForMonth: %w", err)
	}
	return &bill, nil
}

func (r *billRepo) GetByID(ctx context.Context, billID uuid.UUID, adminID *uuid.UUID) (*domain.Bill, error) {
	query := "SELECT * FROM bills WHERE id = $1"
	args := []interface{}{billID}
	if adminID != nil {
		query += " AND admin_id = $2"
		args = append(args, *adminID)
	}

	var bill domain.Bill
	err := r.db.GetContext(ctx, &bill, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("billRepo.GetByID: %w", err)
	}
	return &bill, nil
}

func (r *billRepo) List(ctx context.Context, filter port.BillFilter, offset, limit int) ([]domain.Bill, int, error) {
	where := []string{}
	args := []interface{}{}
	next := 1

	if filter.AdminID != nil {
		where = append(where, fmt.Sprintf("admin_id = $%d", next))
		args = append(args, *filter.AdminID)
		next++
	}
	if !filter.Month.IsZero() {
		where = append(where, fmt.Sprintf("bill_month = $%d", next))
		args = append(args, filter.Month)
		next++
	}
	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", next))
		args = append(args, filter.Status)
		next++
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM bills"+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("billRepo.List count: %w", err)
	}

	listQuery := fmt.Sprintf("SELECT * FROM bills%s ORDER BY bill_date DESC, created_at DESC LIMIT $%d OFFSET $%d",
		clause, next, next+1)
	args = append(args, limit, offset)

	var bills []domain.Bill
	if err := r.db.SelectContext(ctx, &bills, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("billRepo.List: %w", err)
	}
	return bills, total, nil
}

func (r *billRepo) CountForMonth(ctx context.Context, month domain.Month, adminID *uuid.UUID) (int, error) {
	query := "SELECT COUNT(*) FROM bills WHERE bill_month = $1"
	args := []interface{}{month}
	if adminID != nil {
		query += " AND admin_id = $2"
		args = append(args, *adminID)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("billRepo.CountForMonth: %w", err)
	}
	return count, nil
}

func (r *billRepo) Delete(ctx context.Context, billID uuid.UUID, adminID *uuid.UUID) error {
	query := "DELETE FROM bills WHERE id = $1"
	args := []interface{}{billID}
	if adminID != nil {
		query += " AND admin_id = $2"
		args = append(args, *adminID)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("billRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
