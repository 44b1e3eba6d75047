package utils

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DisplayCurrency is the currency used for user-facing messages.
const DisplayCurrency = money.USD

// RoundMoney rounds an amount to cents, half away from zero.
// Non-finite values are returned unchanged.
// Example: 12.345 returns 12.35
func RoundMoney(amount float64) float64 {
	return RoundTo(amount, 2)
}

// RoundTo rounds an amount to the given number of decimal places.
func RoundTo(amount float64, places int32) float64 {
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return amount
	}
	return decimal.NewFromFloat(amount).Round(places).InexactFloat64()
}

// SumMoney adds amounts in decimal space so long columns of cents do not drift.
func SumMoney(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		if math.IsInf(a, 0) || math.IsNaN(a) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.InexactFloat64()
}

// CanonicalAmount renders an amount in its shortest exact decimal form.
// Example: 1200.50 returns "1200.5", 100 returns "100"
func CanonicalAmount(amount float64) string {
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return ""
	}
	return decimal.NewFromFloat(amount).String()
}

// FormatMoney formats an amount for display in messages.
// Example: 1234.5 returns "$1,234.50"
func FormatMoney(amount float64) string {
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return "n/a"
	}
	cents := decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
	return money.New(cents, DisplayCurrency).Display()
}

// FormatPercent formats a percentage with one decimal place.
func FormatPercent(p float64) string {
	if math.IsInf(p, 0) || math.IsNaN(p) {
		return "n/a"
	}
	return decimal.NewFromFloat(p).StringFixed(1) + "%"
}
