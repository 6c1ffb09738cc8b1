package id

import (
	"fmt"
	"strings"
	"time"
)

// MakeRef builds a stable transaction reference like
// "scb_20240105_AMAZON": bank slug, date, and a short alphanumeric
// prefix of the description. Identical inputs always produce the same
// reference, so re-running an export never changes IDs.
func MakeRef(bank string, date time.Time, desc string) string {
	prefix := alnum(desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("%s_%s_%s", Slug(bank), date.Format("20060102"), prefix)
}

// Slug lower-cases a bank name and drops everything but letters and
// digits. "Standard Chartered" -> "standardchartered".
func Slug(bank string) string {
	return strings.ToLower(alnum(bank))
}

func alnum(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
