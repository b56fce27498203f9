package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"ratepulse/pkg/contracts/domain"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{name: "currency symbol with thousands and decimals", input: "$1,234.56", want: 1234.56, ok: true},
		{name: "grouped thousands comma", input: "1,234", want: 1234, ok: true},
		{name: "comma as decimal point", input: "123,45", want: 123.45, ok: true},
		{name: "dot as thousands separator", input: "1.234", want: 1234, ok: true},
		{name: "plain decimal", input: "12.34", want: 12.34, ok: true},
		{name: "mxn display format", input: "MXN 1,358", want: 1358, ok: true},
		{name: "large grouped thousands", input: "1,234,567", want: 1234567, ok: true},
		{name: "dot grouped thousands multiple", input: "1.234.567", want: 1234567, ok: true},
		{name: "plain integer", input: "189", want: 189, ok: true},
		{name: "negative value", input: "-150.25", want: -150.25, ok: true},
		{name: "whitespace padded", input: "  250  ", want: 250, ok: true},
		{name: "empty string", input: "", ok: false},
		{name: "no digits", input: "N/A", ok: false},
		{name: "currency only", input: "MXN", ok: false},
		{name: "multiple non-grouped commas", input: "12,34,56", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseString(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseStringDeterministic(t *testing.T) {
	// Same token twice must yield the same value.
	for _, input := range []string{"$1,234.56", "1.234", "123,45"} {
		first, ok1 := ParseString(input)
		second, ok2 := ParseString(input)
		assert.Equal(t, ok1, ok2)
		assert.Equal(t, first, second, "input %q", input)
	}
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		name  string
		token domain.PriceToken
		want  float64
		ok    bool
	}{
		{name: "numeric token", token: domain.NumberToken(189), want: 189, ok: true},
		{name: "string token", token: domain.StringToken("$150.00"), want: 150, ok: true},
		{name: "nan token", token: domain.NumberToken(math.NaN()), ok: false},
		{name: "inf token", token: domain.NumberToken(math.Inf(1)), ok: false},
		{name: "empty token", token: domain.PriceToken{}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseToken(tt.token)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
