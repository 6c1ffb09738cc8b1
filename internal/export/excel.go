package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/estatement-dev/estatement/internal/model"
)

const sheetName = "Transactions"

// WriteExcel writes transactions as an .xlsx workbook with one
// Transactions sheet. Amounts are numeric cells so spreadsheet sums
// work out of the box.
func WriteExcel(w io.Writer, txns []model.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	headers := strings.Split(Header, ",")
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header %q: %w", h, err)
		}
	}

	for i, t := range txns {
		row := i + 2
		amount, _ := t.Amount.Round(2).Float64()
		values := []any{t.Bank, t.Date.Format(dateFormat), amount, t.Description, t.Category, t.Reference}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("cell for row %d: %w", row, err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
