package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"rentdesk/internal/domain"
	"rentdesk/internal/export"
)

func testBill(amount int64, status domain.BillStatus) domain.Bill {
	return domain.Bill{
		ID:          uuid.New(),
		TenantID:    uuid.New(),
		PropertyID:  uuid.New(),
		AdminID:     uuid.New(),
		Month:       domain.Month{Year: 2025, Month: time.June},
		RentAmount:  decimal.NewFromInt(amount),
		Charges:     decimal.Zero,
		TotalAmount: decimal.NewFromInt(amount),
		DueDate:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		BillDate:    time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		Status:      status,
	}
}

func TestBillRegister(t *testing.T) {
	month := domain.Month{Year: 2025, Month: time.June}
	bills := []domain.Bill{
		testBill(1200, domain.BillPending),
		testBill(1500, domain.BillPaid),
	}

	data, err := export.BillRegister(month, bills)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bills")
	require.NoError(t, err)

	// Header, two bills, totals row.
	require.Len(t, rows, 4)
	assert.Equal(t, "Bill ID", rows[0][0])
	assert.Equal(t, "Total", rows[0][6])

	assert.Equal(t, bills[0].ID.String(), rows[1][0])
	assert.Equal(t, "2025-06", rows[1][3])
	assert.Equal(t, "1200", rows[1][6])
	assert.Equal(t, "PENDING", rows[1][8])
	assert.Equal(t, "PAID", rows[2][8])

	assert.Equal(t, "Total (2025-06)", rows[3][0])
	assert.Equal(t, "2700", rows[3][6])
}

func TestBillRegister_Empty(t *testing.T) {
	month := domain.Month{Year: 2025, Month: time.June}

	data, err := export.BillRegister(month, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bills")
	require.NoError(t, err)

	// Header plus a zero totals row.
	require.Len(t, rows, 2)
	assert.Equal(t, "Total (2025-06)", rows[1][0])
	assert.Equal(t, "0", rows[1][6])
}
