// Package pattern loads and validates per-bank extraction patterns.
//
// Each bank is a plain configuration value: a regular expression, a
// mapping from logical field to capture group, a date layout, and sign
// convention flags. Adding a bank is a configuration change, not a
// code change.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ConfigError reports an invalid or missing bank configuration.
type ConfigError struct {
	Bank string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bank pattern %q: %v", e.Bank, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Spec is one bank's raw configuration record as it appears in YAML.
type Spec struct {
	Pattern              string   `yaml:"pattern"`
	FreeSpacing          bool     `yaml:"free_spacing"`
	TransactionDateGroup int      `yaml:"transaction_date_group"`
	DescriptionGroup     int      `yaml:"description_group"`
	AmountGroup          int      `yaml:"amount_group"`
	CreditMarkerGroup    int      `yaml:"credit_marker_group"`
	InvertAmountIfCR     bool     `yaml:"invert_amount_if_cr"`
	PlusMeansNegative    bool     `yaml:"plus_means_negative"`
	DateLayout           string   `yaml:"parse_date_format"`
	StatementDatePattern string   `yaml:"statement_date_pattern"`
	StatementDateLayout  string   `yaml:"statement_date_format"`
	Aliases              []string `yaml:"aliases"`
}

// BankPattern is a compiled, validated bank configuration. Immutable
// after Compile; safe for concurrent use.
type BankPattern struct {
	Bank              string
	Regexp            *regexp.Regexp
	DateGroup         int
	DescriptionGroup  int
	AmountGroup       int
	CreditMarkerGroup int // 0 when the bank has no credit marker
	InvertAmountIfCR  bool
	PlusMeansNegative bool
	DateLayout        string
	DateHasYear       bool
	StatementDateRe   *regexp.Regexp // nil when not configured
	StatementDateFmt  string
	Aliases           []string
}

// HasCreditMarker reports whether the pattern captures a credit marker.
func (p *BankPattern) HasCreditMarker() bool { return p.CreditMarkerGroup > 0 }

// NeedsStatementDate reports whether transaction dates cannot be
// resolved without statement-level context.
func (p *BankPattern) NeedsStatementDate() bool { return !p.DateHasYear }

// Logical field names used for named capture group resolution.
const (
	fieldDate         = "transaction_date"
	fieldDescription  = "description"
	fieldAmount       = "amount"
	fieldCreditMarker = "credit_marker"
)

// Compile validates a Spec and produces a BankPattern. All group
// indices and date layouts are checked here so that extraction never
// has to re-validate per line.
func Compile(bank string, spec Spec) (*BankPattern, error) {
	fail := func(err error) (*BankPattern, error) {
		return nil, &ConfigError{Bank: bank, Err: err}
	}

	if strings.TrimSpace(spec.Pattern) == "" {
		return fail(fmt.Errorf("pattern is empty"))
	}

	src := spec.Pattern
	if spec.FreeSpacing {
		src = stripFreeSpacing(src)
	}
	// Anchors in bank patterns are per-line within the statement blob.
	re, err := regexp.Compile("(?m)" + src)
	if err != nil {
		return fail(fmt.Errorf("compiling pattern: %w", err))
	}

	p := &BankPattern{
		Bank:              bank,
		Regexp:            re,
		InvertAmountIfCR:  spec.InvertAmountIfCR,
		PlusMeansNegative: spec.PlusMeansNegative,
		DateLayout:        spec.DateLayout,
		Aliases:           spec.Aliases,
	}

	if p.DateGroup, err = resolveGroup(re, fieldDate, spec.TransactionDateGroup, true); err != nil {
		return fail(err)
	}
	if p.DescriptionGroup, err = resolveGroup(re, fieldDescription, spec.DescriptionGroup, true); err != nil {
		return fail(err)
	}
	if p.AmountGroup, err = resolveGroup(re, fieldAmount, spec.AmountGroup, true); err != nil {
		return fail(err)
	}
	if p.CreditMarkerGroup, err = resolveGroup(re, fieldCreditMarker, spec.CreditMarkerGroup, false); err != nil {
		return fail(err)
	}
	if spec.InvertAmountIfCR && p.CreditMarkerGroup == 0 {
		return fail(fmt.Errorf("invert_amount_if_cr set but no credit_marker group"))
	}

	if spec.DateLayout == "" {
		return fail(fmt.Errorf("parse_date_format is empty"))
	}
	hasYear, ok := checkLayout(spec.DateLayout)
	if !ok {
		return fail(fmt.Errorf("parse_date_format %q is not a valid date layout", spec.DateLayout))
	}
	p.DateHasYear = hasYear

	if spec.StatementDatePattern != "" {
		sre, err := regexp.Compile(spec.StatementDatePattern)
		if err != nil {
			return fail(fmt.Errorf("compiling statement_date_pattern: %w", err))
		}
		if sre.NumSubexp() < 1 {
			return fail(fmt.Errorf("statement_date_pattern has no capture group"))
		}
		if spec.StatementDateLayout == "" {
			return fail(fmt.Errorf("statement_date_pattern set without statement_date_format"))
		}
		sHasYear, ok := checkLayout(spec.StatementDateLayout)
		if !ok {
			return fail(fmt.Errorf("statement_date_format %q is not a valid date layout", spec.StatementDateLayout))
		}
		if !sHasYear {
			return fail(fmt.Errorf("statement_date_format %q lacks a year", spec.StatementDateLayout))
		}
		p.StatementDateRe = sre
		p.StatementDateFmt = spec.StatementDateLayout
	} else if spec.StatementDateLayout != "" {
		return fail(fmt.Errorf("statement_date_format set without statement_date_pattern"))
	}

	return p, nil
}

// resolveGroup maps a logical field to a capture group index. An
// explicit index wins; otherwise a named group matching the logical
// field name is used. Required fields must resolve one way or the
// other.
func resolveGroup(re *regexp.Regexp, field string, idx int, required bool) (int, error) {
	if idx == 0 {
		if named := re.SubexpIndex(field); named > 0 {
			return named, nil
		}
		if required {
			return 0, fmt.Errorf("no group configured for %s", field)
		}
		return 0, nil
	}
	if idx < 1 || idx > re.NumSubexp() {
		return 0, fmt.Errorf("%s group %d out of range (pattern has %d groups)", field, idx, re.NumSubexp())
	}
	return idx, nil
}

// checkLayout verifies that layout is a usable Go date layout by
// round-tripping a reference date through it. It returns whether the
// layout carries a year and whether it is valid at all. A layout with
// no recognized day or month token fails the round-trip comparison.
func checkLayout(layout string) (hasYear, ok bool) {
	ref := time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC)
	parsed, err := time.Parse(layout, ref.Format(layout))
	if err != nil {
		return false, false
	}
	if parsed.Day() != ref.Day() || parsed.Month() != ref.Month() {
		return false, false
	}
	return parsed.Year() == ref.Year(), true
}

// stripFreeSpacing removes insignificant whitespace and #-comments
// from a pattern, emulating free-spacing mode, which RE2 lacks.
// Whitespace inside character classes is kept; escaped spaces become
// single-space character classes.
func stripFreeSpacing(src string) string {
	var b strings.Builder
	inClass := false
	escaped := false
	inComment := false
	for _, r := range src {
		switch {
		case inComment:
			if r == '\n' {
				inComment = false
			}
		case escaped:
			if r == ' ' {
				b.WriteString("[ ]")
			} else {
				b.WriteRune('\\')
				b.WriteRune(r)
			}
			escaped = false
		case r == '\\':
			escaped = true
		case inClass:
			b.WriteRune(r)
			if r == ']' {
				inClass = false
			}
		case r == '[':
			b.WriteRune(r)
			inClass = true
		case r == '#':
			inComment = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			// insignificant
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
