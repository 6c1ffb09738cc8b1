// Package parse turns raw statement text into transactions using a
// bank's compiled pattern. Extraction, normalization and assembly are
// separate steps so each can be tested in isolation; none of them
// carries bank-specific branches.
package parse

import (
	"iter"

	"github.com/estatement-dev/estatement/internal/pattern"
)

// RawMatch is one pattern match against the statement text: the
// unparsed substrings for each logical field plus the full matched
// span and its offsets.
type RawMatch struct {
	Date         string
	Description  string
	Amount       string
	CreditMarker string
	Text         string
	Start, End   int
}

// Matches returns the non-overlapping matches of a bank's pattern
// against text, in document order. The sequence is finite and
// restartable; matching work happens when the sequence is consumed.
// Empty text or zero matches yield an empty sequence, not an error.
func Matches(p *pattern.BankPattern, text string) iter.Seq[RawMatch] {
	return func(yield func(RawMatch) bool) {
		if text == "" {
			return
		}
		for _, loc := range p.Regexp.FindAllStringSubmatchIndex(text, -1) {
			if !yield(newRawMatch(p, text, loc)) {
				return
			}
		}
	}
}

func newRawMatch(p *pattern.BankPattern, text string, loc []int) RawMatch {
	m := RawMatch{
		Date:        group(text, loc, p.DateGroup),
		Description: group(text, loc, p.DescriptionGroup),
		Amount:      group(text, loc, p.AmountGroup),
		Text:        text[loc[0]:loc[1]],
		Start:       loc[0],
		End:         loc[1],
	}
	if p.HasCreditMarker() {
		m.CreditMarker = group(text, loc, p.CreditMarkerGroup)
	}
	return m
}

// group extracts submatch i from index pairs; optional groups that
// did not participate in the match come back empty.
func group(text string, loc []int, i int) string {
	start, end := loc[2*i], loc[2*i+1]
	if start < 0 {
		return ""
	}
	return text[start:end]
}
