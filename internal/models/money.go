package models

import "github.com/shopspring/decimal"

// FormatFixed renders a money or energy value as a decimal string with
// exactly two fractional digits, the wire format the dashboard expects.
func FormatFixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatBreakdown renders every carrier amount with two fractional digits.
func FormatBreakdown(b CostBreakdown) map[string]string {
	out := make(map[string]string, len(b))
	for carrier, amount := range b {
		out[carrier] = FormatFixed(amount)
	}
	return out
}
