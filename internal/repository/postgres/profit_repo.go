package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"rentdesk/internal/port"
)

type profitRepo struct {
	db *sqlx.DB
}

// NewProfitRepo creates a new PostgreSQL-backed ProfitRepository.
func NewProfitRepo(db *sqlx.DB) port.ProfitRepository {
	return &profitRepo{db: db}
}

func (r *profitRepo) GetTotal(ctx context.Context, adminID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total,
		"SELECT total FROM profit_ledger WHERE admin_id = $1", adminID)
	if err != nil {
		// An admin with no paid bills has no ledger row yet.
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("profitRepo.GetTotal: %w", err)
	}
	return total, nil
}

func (r *profitRepo) SumPaidBills(ctx context.Context, adminID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.GetContext(ctx, &sum,
		"SELECT COALESCE(SUM(total_amount), 0) FROM bills WHERE admin_id = $1 AND status = 'PAID'",
		adminID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("profitRepo.SumPaidBills: %w", err)
	}
	return sum, nil
}
