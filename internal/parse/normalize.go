package parse

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/estatement-dev/estatement/internal/pattern"
)

// ParseDate parses a raw date substring with the bank's layout. When
// the layout has no year token the result carries year 0; resolving
// the year is the assembler's job, not the normalizer's.
func ParseDate(value, layout string) (time.Time, error) {
	v := strings.TrimSpace(value)
	t, err := time.Parse(layout, v)
	if err != nil {
		// Statements often print months in upper case ("14NOV");
		// time.Parse matches month names case-sensitively.
		t, err = time.Parse(layout, titleCaseWords(v))
	}
	if err != nil {
		return time.Time{}, &DateFormatError{Value: value, Layout: layout, Err: err}
	}
	return t, nil
}

// ParseAmount converts a raw amount substring into a signed decimal.
// Sign rules apply in fixed order: a leading "+" means outflow when
// the bank says so, otherwise a leading "-" means outflow; a captured
// credit marker then flips the result when the bank inverts on
// credit; a fully parenthesized amount flips last.
func ParseAmount(p *pattern.BankPattern, value, creditMarker string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(value)
	cleaned := strings.NewReplacer("$", "", ",", "", "(", "", ")", "").Replace(raw)

	neg := false
	switch {
	case p.PlusMeansNegative && strings.HasPrefix(cleaned, "+"):
		neg = true
	case strings.HasPrefix(cleaned, "-"):
		neg = true
	}

	magnitude := strings.TrimLeft(cleaned, "+-")
	d, err := decimal.NewFromString(magnitude)
	if err != nil {
		return decimal.Decimal{}, &AmountFormatError{Value: value, Err: err}
	}

	if neg {
		d = d.Neg()
	}
	if p.InvertAmountIfCR && strings.TrimSpace(creditMarker) != "" {
		d = d.Neg()
	}
	if strings.Contains(raw, "(") && strings.Contains(raw, ")") {
		d = d.Neg()
	}
	return d, nil
}

// NormalizeDescription collapses whitespace runs to single spaces and
// trims the ends. It never fails.
func NormalizeDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// titleCaseWords upper-cases the first letter and lower-cases the rest
// of every alphabetic run, so "14NOV" becomes "14Nov".
func titleCaseWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		if !unicode.IsLetter(r) {
			startOfWord = true
			b.WriteRune(r)
			continue
		}
		if startOfWord {
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
