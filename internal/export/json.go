package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/estatement-dev/estatement/internal/model"
)

// jsonRecord pins the JSON shape independent of the model: dates as
// plain calendar days, amounts as fixed two-decimal strings.
type jsonRecord struct {
	Bank        string `json:"bank"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Reference   string `json:"reference"`
}

// WriteJSON writes transactions as an indented JSON array.
func WriteJSON(w io.Writer, txns []model.Transaction) error {
	records := make([]jsonRecord, len(txns))
	for i, t := range txns {
		records[i] = jsonRecord{
			Bank:        t.Bank,
			Date:        t.Date.Format(dateFormat),
			Amount:      t.Amount.StringFixed(2),
			Description: t.Description,
			Category:    t.Category,
			Reference:   t.Reference,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding transactions: %w", err)
	}
	return nil
}
