package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"USD", true},
		{"EUR", true},
		{"JPY", true},
		{"INVALID", false},
		{"", false},
		{"usd", false}, // case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValid(tt.code))
		})
	}
}

func TestGetInfo(t *testing.T) {
	info, ok := GetInfo(JPY)
	assert.True(t, ok)
	assert.Equal(t, int32(0), info.DecimalPlaces)

	_, ok = GetInfo(Currency("XXX"))
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   string
		currency Currency
		want     string
	}{
		{"USD small", "12.5", USD, "$12.50"},
		{"USD thousands", "1234567.891", USD, "$1,234,567.89"},
		{"USD exact thousand", "1000", USD, "$1,000.00"},
		{"EUR after amount", "2500.4", EUR, "2.500,40 EUR"},
		{"JPY no decimals", "1500.6", JPY, "JPY1,501"},
		{"CHF apostrophe", "12000", CHF, "CHF12'000.00"},
		{"negative", "-45.1", USD, "-$45.10"},
		{"zero", "0", USD, "$0.00"},
		{"unknown code", "10", Currency("XYZ"), "10.00 XYZ"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Format(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}
