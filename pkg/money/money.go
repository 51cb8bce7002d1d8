package money

// Package money converts between YNAB milliunits (the API's fixed-point
// integer representation, thousandths of the currency unit) and float
// amounts used everywhere else in the codebase.

import "math"

// ToDecimal converts a milliunit amount to a decimal currency amount.
func ToDecimal(milliunits int64) float64 {
	return float64(milliunits) / 1000.0
}

// ToMilliunits converts a decimal currency amount to milliunits, rounding
// to the nearest integer (half away from zero).
func ToMilliunits(amount float64) int64 {
	return int64(math.Round(amount * 1000.0))
}

// Abs returns the magnitude of a milliunit amount. Debt account balances
// come back negative from YNAB; we always track the magnitude owed.
func Abs(milliunits int64) int64 {
	if milliunits < 0 {
		return -milliunits
	}
	return milliunits
}
