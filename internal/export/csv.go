// Package export serializes transactions to CSV, Excel and JSON. The
// core pipeline hands it finished transactions and is agnostic to the
// encodings here.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/estatement-dev/estatement/internal/model"
)

// Header is the CSV header for transaction exports.
const Header = "bank,date,amount,description,category,reference"

const (
	numFields  = 6
	dateFormat = "2006-01-02"
	colBank    = 0
	colDate    = 1
	colAmount  = 2
	colDesc    = 3
	colCat     = 4
	colRef     = 5
)

// WriteCSV writes transactions as CSV, header included.
func WriteCSV(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(MarshalRow(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadCSV reads transactions back from a CSV export.
func ReadCSV(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transaction CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		t, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// MarshalRow converts a Transaction to a CSV row.
func MarshalRow(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colBank] = t.Bank
	row[colDate] = t.Date.Format(dateFormat)
	row[colAmount] = t.Amount.StringFixed(2)
	row[colDesc] = t.Description
	row[colCat] = t.Category
	row[colRef] = t.Reference
	return row
}

// UnmarshalRow converts a CSV row to a Transaction.
func UnmarshalRow(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Transaction{
		Bank:        record[colBank],
		Date:        date,
		Amount:      amount,
		Description: record[colDesc],
		Category:    record[colCat],
		Reference:   record[colRef],
	}, nil
}
