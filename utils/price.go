package utils

import (
	"github.com/shopspring/decimal"
)

// FormatPriceTrimmed rounds to at most two decimal digits and strips
// trailing zeros: 44.50 renders as "44.5", 44.00 as "44".
func FormatPriceTrimmed(price float64) string {
	return decimal.NewFromFloat(price).Round(2).String()
}

// FormatPriceFixed always renders two decimal digits: 44.5 renders as
// "44.50".
func FormatPriceFixed(price float64) string {
	return decimal.NewFromFloat(price).Round(2).StringFixed(2)
}
