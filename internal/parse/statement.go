package parse

import (
	"github.com/estatement-dev/estatement/internal/model"
	"github.com/estatement-dev/estatement/internal/pattern"
)

// Result holds every outcome for one statement, in document order.
type Result struct {
	Bank     string
	Outcomes []ParseOutcome
}

// Transactions returns the successful outcomes in order.
func (r Result) Transactions() []model.Transaction {
	var txns []model.Transaction
	for _, o := range r.Outcomes {
		if !o.Rejected() {
			txns = append(txns, *o.Transaction)
		}
	}
	return txns
}

// Rejections returns the failed outcomes in order.
func (r Result) Rejections() []ParseOutcome {
	var rejected []ParseOutcome
	for _, o := range r.Outcomes {
		if o.Rejected() {
			rejected = append(rejected, o)
		}
	}
	return rejected
}

// ProcessStatement runs the full pipeline for one statement: locate
// the statement date if the bank defines one, then extract and
// assemble every matching line. The returned error is non-nil only
// for statement-level failures (MissingStatementDateError); per-line
// failures are rejection outcomes inside the Result.
func ProcessStatement(p *pattern.BankPattern, text string) (Result, error) {
	ctx, err := StatementContext(p, text)
	if err != nil {
		return Result{}, err
	}

	res := Result{Bank: p.Bank}
	for m := range Matches(p, text) {
		res.Outcomes = append(res.Outcomes, Assemble(p, m, ctx))
	}
	return res, nil
}

// StatementContext scans the full text once for the bank's statement
// date and returns it as assembly context. Banks without a statement
// date pattern get a nil context. A missing or unparseable statement
// date is fatal only when the bank's transaction dates need a year
// resolved.
func StatementContext(p *pattern.BankPattern, text string) (*Context, error) {
	if p.StatementDateRe == nil {
		return nil, nil
	}

	m := p.StatementDateRe.FindStringSubmatch(text)
	if m == nil {
		if p.NeedsStatementDate() {
			return nil, &MissingStatementDateError{Bank: p.Bank}
		}
		return nil, nil
	}

	d, err := ParseDate(m[1], p.StatementDateFmt)
	if err != nil {
		if p.NeedsStatementDate() {
			return nil, &MissingStatementDateError{Bank: p.Bank, Err: err}
		}
		return nil, nil
	}
	return ContextForDate(d), nil
}
