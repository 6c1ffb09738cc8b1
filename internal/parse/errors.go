package parse

import "fmt"

// DateFormatError reports a transaction date that does not match the
// bank's configured layout.
type DateFormatError struct {
	Value  string
	Layout string
	Err    error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("parsing date %q with layout %q: %v", e.Value, e.Layout, e.Err)
}

func (e *DateFormatError) Unwrap() error { return e.Err }

// AmountFormatError reports a non-numeric amount field.
type AmountFormatError struct {
	Value string
	Err   error
}

func (e *AmountFormatError) Error() string {
	return fmt.Sprintf("parsing amount %q: %v", e.Value, e.Err)
}

func (e *AmountFormatError) Unwrap() error { return e.Err }

// AmbiguousDateError reports a year-less transaction date with no
// statement context available to resolve it.
type AmbiguousDateError struct {
	Value string
}

func (e *AmbiguousDateError) Error() string {
	return fmt.Sprintf("date %q has no year and no statement context is available", e.Value)
}

// MissingStatementDateError reports that a bank requires a statement
// date for year resolution but none was found in the text. This is
// fatal for the whole statement: no line can be dated unambiguously.
type MissingStatementDateError struct {
	Bank string
	Err  error
}

func (e *MissingStatementDateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bank %q: statement date: %v", e.Bank, e.Err)
	}
	return fmt.Sprintf("bank %q: statement date not found in text", e.Bank)
}

func (e *MissingStatementDateError) Unwrap() error { return e.Err }

// ExcludedDescriptionError marks a line skipped because its
// description matched a non-transaction keyword (balance summaries,
// payment confirmations and the like). Recorded as a rejection so the
// skip stays auditable.
type ExcludedDescriptionError struct {
	Keyword string
}

func (e *ExcludedDescriptionError) Error() string {
	return fmt.Sprintf("description matched excluded keyword %q", e.Keyword)
}
