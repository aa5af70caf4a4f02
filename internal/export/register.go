// Package export renders monthly bill registers as XLSX workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"rentdesk/internal/domain"
)

const sheetName = "Bills"

var headers = []string{"Bill ID", "Tenant ID", "Property ID", "Month", "Rent", "Charges", "Total", "Due Date", "Status", "Payment Date"}

// BillRegister renders one month's bills into an XLSX register with a header
// row, one row per bill, and a trailing totals row. Rows appear in the order
// given.
func BillRegister(month domain.Month, bills []domain.Bill) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("export.BillRegister: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("export.BillRegister header: %w", err)
		}
	}

	total := decimal.Zero
	for i, bill := range bills {
		row := i + 2
		payment := ""
		if bill.PaymentDate != nil {
			payment = bill.PaymentDate.Format("2006-01-02")
		}
		values := []interface{}{
			bill.ID.String(),
			bill.TenantID.String(),
			bill.PropertyID.String(),
			bill.Month.String(),
			bill.RentAmount.InexactFloat64(),
			bill.Charges.InexactFloat64(),
			bill.TotalAmount.InexactFloat64(),
			bill.DueDate.Format("2006-01-02"),
			string(bill.Status),
			payment,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("export.BillRegister row %d: %w", row, err)
			}
		}
		total = total.Add(bill.TotalAmount)
	}

	totalsRow := len(bills) + 2
	cell, _ := excelize.CoordinatesToCellName(1, totalsRow)
	_ = f.SetCellValue(sheetName, cell, fmt.Sprintf("Total (%s)", month))
	cell, _ = excelize.CoordinatesToCellName(7, totalsRow)
	_ = f.SetCellValue(sheetName, cell, total.InexactFloat64())

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export.BillRegister write: %w", err)
	}
	return buf.Bytes(), nil
}
