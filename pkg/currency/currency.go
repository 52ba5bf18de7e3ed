// Package currency formats expense amounts for display.
// Amounts are always carried as decimal.Decimal; this package only decides how they are printed.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency represents an ISO 4217 currency code.
type Currency string

// Supported display currencies.
const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CHF Currency = "CHF"
	CAD Currency = "CAD"
)

// DefaultCurrency is used when none is configured.
const DefaultCurrency = USD

// Info describes how a currency is printed.
type Info struct {
	Code          Currency
	Symbol        string
	DecimalPlaces int32
	SymbolBefore  bool
	ThousandsSep  string
	DecimalSep    string
}

var currencies = map[Currency]Info{
	USD: {Code: USD, Symbol: "$", DecimalPlaces: 2, SymbolBefore: true, ThousandsSep: ",", DecimalSep: "."},
	EUR: {Code: EUR, Symbol: "EUR", DecimalPlaces: 2, SymbolBefore: false, ThousandsSep: ".", DecimalSep: ","},
	GBP: {Code: GBP, Symbol: "GBP", DecimalPlaces: 2, SymbolBefore: true, ThousandsSep: ",", DecimalSep: "."},
	JPY: {Code: JPY, Symbol: "JPY", DecimalPlaces: 0, SymbolBefore: true, ThousandsSep: ",", DecimalSep: "."},
	CHF: {Code: CHF, Symbol: "CHF", DecimalPlaces: 2, SymbolBefore: true, ThousandsSep: "'", DecimalSep: "."},
	CAD: {Code: CAD, Symbol: "C$", DecimalPlaces: 2, SymbolBefore: true, ThousandsSep: ",", DecimalSep: "."},
}

// IsValid checks if a currency code is supported.
func IsValid(code string) bool {
	_, ok := currencies[Currency(code)]
	return ok
}

// GetInfo returns formatting metadata for a currency code.
func GetInfo(code Currency) (Info, bool) {
	info, ok := currencies[code]
	return info, ok
}

// Format renders amount using the currency's symbol, separators and precision.
// Unknown codes fall back to "<amount> <code>" with two decimals.
// The PDF renderer uses core fonts, so symbols are kept to ASCII.
func Format(amount decimal.Decimal, code Currency) string {
	info, ok := GetInfo(code)
	if !ok {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), code)
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	fixed := amount.Round(info.DecimalPlaces).StringFixed(info.DecimalPlaces)
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	number := groupThousands(intPart, info.ThousandsSep)
	if fracPart != "" {
		number += info.DecimalSep + fracPart
	}

	if info.SymbolBefore {
		return sign + info.Symbol + number
	}
	return sign + number + " " + info.Symbol
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
