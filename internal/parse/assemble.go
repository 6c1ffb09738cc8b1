package parse

import (
	"strings"
	"time"

	"github.com/estatement-dev/estatement/internal/id"
	"github.com/estatement-dev/estatement/internal/model"
	"github.com/estatement-dev/estatement/internal/pattern"
)

// Context carries statement-wide information into per-line assembly.
// It resolves the year for banks whose transaction dates omit one.
type Context struct {
	Year          int
	StatementDate time.Time // zero when only a year is known
}

// ContextForDate derives a Context from a statement issue date.
func ContextForDate(d time.Time) *Context {
	return &Context{Year: d.Year(), StatementDate: d}
}

// ContextForYear builds a Context from a bare year.
func ContextForYear(year int) *Context {
	return &Context{Year: year}
}

// ParseOutcome is the result of assembling one raw match: either a
// transaction or a rejection with the reason and original text.
// Every candidate match produces exactly one outcome; nothing is
// dropped silently.
type ParseOutcome struct {
	Transaction *model.Transaction
	Text        string
	Err         error
}

// Rejected reports whether the match failed assembly.
func (o ParseOutcome) Rejected() bool { return o.Err != nil }

// excludedKeywords marks statement lines that match transaction
// patterns but are not spend/income records: balance carry-overs,
// payment confirmations, cashback summaries.
var excludedKeywords = []string{
	"OUTSTANDING BALANCE",
	"PREVIOUS BALANCE",
	"PREVIOUS STATEMENT",
	"CREDIT PAYMENT",
	"PAYMENT VIA",
	"POSTING AMOUNT",
	"CASHBACK",
	"CASH BACK",
	"CASH REBATE",
	"LATE CHARGE",
	"LATECHARGEFEE",
}

// Assemble converts one raw match into a ParseOutcome. Field-level
// failures become rejections; they never escalate past this boundary.
func Assemble(p *pattern.BankPattern, m RawMatch, ctx *Context) ParseOutcome {
	reject := func(err error) ParseOutcome {
		return ParseOutcome{Text: m.Text, Err: err}
	}

	desc := NormalizeDescription(m.Description)
	if kw, ok := excluded(desc); ok {
		return reject(&ExcludedDescriptionError{Keyword: kw})
	}

	date, err := ParseDate(m.Date, p.DateLayout)
	if err != nil {
		return reject(err)
	}
	if !p.DateHasYear {
		if ctx == nil {
			return reject(&AmbiguousDateError{Value: m.Date})
		}
		date = resolveYear(date, ctx)
	}

	amount, err := ParseAmount(p, m.Amount, m.CreditMarker)
	if err != nil {
		return reject(err)
	}

	txn := model.Transaction{
		Bank:        p.Bank,
		Date:        date,
		Description: desc,
		Amount:      amount,
		Reference:   id.MakeRef(p.Bank, date, desc),
	}
	return ParseOutcome{Transaction: &txn, Text: m.Text}
}

// resolveYear pins a year-less date to the statement year, stepping
// back one year when the candidate would land after the statement
// date (a December transaction on a January statement).
func resolveYear(d time.Time, ctx *Context) time.Time {
	resolved := time.Date(ctx.Year, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	if !ctx.StatementDate.IsZero() && resolved.After(ctx.StatementDate) {
		resolved = time.Date(ctx.Year-1, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	return resolved
}

func excluded(desc string) (string, bool) {
	upper := strings.ToUpper(desc)
	for _, kw := range excludedKeywords {
		if strings.Contains(upper, kw) {
			return kw, true
		}
	}
	return "", false
}
