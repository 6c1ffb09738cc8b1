package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one normalized statement line.
type Transaction struct {
	Bank        string          `json:"bank"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // negative = outflow, positive = inflow
	Reference   string          `json:"reference"`
	Category    string          `json:"category,omitempty"`
}

// WithCategory returns a copy with the category label attached.
// Transactions are otherwise immutable after assembly.
func (t Transaction) WithCategory(category string) Transaction {
	t.Category = category
	return t
}
