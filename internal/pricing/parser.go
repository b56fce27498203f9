// Package pricing converts raw scraped price tokens into numeric values.
//
// Scraped prices arrive in whatever shape the booking site rendered them:
// plain numbers, "MXN 1,358", "$189.00", "1.234" with dot-grouped thousands.
// The parser strips currency decoration and resolves the thousands/decimal
// separator ambiguity with a fixed convention so that the same token always
// yields the same number.
package pricing

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"ratepulse/pkg/contracts/domain"
)

// Grouped-thousands shapes: 1-3 leading digits then groups of exactly three.
var (
	commaGrouped = regexp.MustCompile(`^-?\d{1,3}(?:,\d{3})+$`)
	dotGrouped   = regexp.MustCompile(`^-?\d{1,3}(?:\.\d{3})+$`)
)

// ParseToken parses a raw price token into a finite numeric value. The
// boolean is false when the token cannot be read as a finite number; it is
// never an error, callers simply skip the row.
func ParseToken(token domain.PriceToken) (float64, bool) {
	switch v := token.Value().(type) {
	case float64:
		return finite(v)
	case string:
		return ParseString(v)
	default:
		return 0, false
	}
}

// ParseString parses a display price string such as "MXN 1,358" or "$189.00".
//
// Separator resolution is deliberate and fixed: a lone "1,234" is always
// read as one thousand two hundred thirty-four, never 1.234. Downstream
// comparisons depend on this staying consistent.
func ParseString(s string) (float64, bool) {
	cleaned := stripDecoration(s)
	if cleaned == "" {
		return 0, false
	}

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")

	switch {
	case hasComma && hasDot:
		// Both present: comma is the thousands separator, dot the decimal.
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case hasComma:
		if commaGrouped.MatchString(cleaned) {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			// A non-grouped comma is the decimal point.
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
	default:
		if dotGrouped.MatchString(cleaned) {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return finite(v)
}

// stripDecoration drops every character that is not a digit, '.', ',' or '-'
func stripDecoration(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func finite(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
