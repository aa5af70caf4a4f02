package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

type paymentRepo struct {
	db *sqlx.DB
}

// NewPaymentRepo creates the PostgreSQL-backed PaymentLedger. Each transition
// runs the bill flip and the profit mutation inside one transaction; the row
// lock taken by the scoped SELECT serializes concurrent transitions on the
// same bill, so the loser observes the already-flipped status instead of
// double-moving the ledger.
func NewPaymentRepo(db *sqlx.DB) port.PaymentLedger {
	return &paymentRepo{db: db}
}

const profitUpsertQuery = `INSERT INTO profit_ledger (admin_id, total, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (admin_id) DO UPDATE
	SET total = profit_ledger.total + EXCLUDED.total, updated_at = EXCLUDED.updated_at
	RETURNING total`

func (r *paymentRepo) MarkPaid(ctx context.Context, billID uuid.UUID, adminID *uuid.UUID, paidAt time.Time) (*domain.Bill, decimal.Decimal, error) {
	var (
		bill  domain.Bill
		total decimal.Decimal
	)
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockBill(ctx, tx, &bill, billID, adminID); err != nil {
			return err
		}
		if bill.Status == domain.BillPaid {
			return domain.ErrBillAlreadyPaid
		}
		if !bill.TotalAmount.IsPositive() {
			return domain.ErrInvalidAmount
		}

		paidAt = paidAt.UTC()
		_, err := tx.ExecContext(ctx,
			`UPDATE bills SET status = $1, payment_date = $2, updated_at = $3 WHERE id = $4`,
			domain.BillPaid, paidAt, paidAt, bill.ID)
		if err != nil {
			return fmt.Errorf("update bill: %w", err)
		}
		bill.Status = domain.BillPaid
		bill.PaymentDate = &paidAt
		bill.UpdatedAt = paidAt

		// Credit goes to the bill's owning admin, never the caller.
		if err := tx.GetContext(ctx, &total, profitUpsertQuery,
			bill.AdminID, bill.TotalAmount, paidAt); err != nil {
			return fmt.Errorf("credit profit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return &bill, total, nil
}

func (r *paymentRepo) UndoPayment(ctx context.Context, billID uuid.UUID, adminID *uuid.UUID) (*domain.Bill, decimal.Decimal, error) {
	var (
		bill  domain.Bill
		total decimal.Decimal
	)
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockBill(ctx, tx, &bill, billID, adminID); err != nil {
			return err
		}
		if bill.Status != domain.BillPaid {
			return domain.ErrBillNotPaid
		}

		now := time.Now().UTC()
		_, err := tx.ExecContext(ctx,
			`UPDATE bills SET status = $1, payment_date = NULL, updated_at = $2 WHERE id = $3`,
			domain.BillPending, now, bill.ID)
		if err != nil {
			return fmt.Errorf("update bill: %w", err)
		}
		bill.Status = domain.BillPending
		bill.PaymentDate = nil
		bill.UpdatedAt = now

		if err := tx.GetContext(ctx, &total, profitUpsertQuery,
			bill.AdminID, bill.TotalAmount.Neg(), now); err != nil {
			return fmt.Errorf("debit profit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return &bill, total, nil
}

// lockBill loads the bill FOR UPDATE, optionally scoped to one admin.
// Missing and not-owned collapse into ErrNotFound.
func lockBill(ctx context.Context, tx *sqlx.Tx, bill *domain.Bill, billID uuid.UUID, adminID *uuid.UUID) error {
	query := "SELECT * FROM bills WHERE id = $1"
	args := []interface{}{billID}
	if adminID != nil {
		query += " AND admin_id = $2"
		args = append(args, *adminID)
	}
	query += " FOR UPDATE"

	if err := tx.GetContext(ctx, bill, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock bill: %w", err)
	}
	return nil
}

func (r *paymentRepo) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("paymentRepo: begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("paymentRepo: rollback after %v: %w", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("paymentRepo: commit: %w", err)
	}
	return nil
}
