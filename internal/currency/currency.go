// Package currency normalizes amounts into the base currency.
package currency

import (
	"github.com/shopspring/decimal"

	"gelirgider/internal/models"
)

var one = decimal.NewFromInt(1)

// DefaultRates returns a fresh copy of the built-in rate table.
func DefaultRates() models.ExchangeRates {
	return models.ExchangeRates{
		models.CurrencyTRY: one,
		models.CurrencyUSD: decimal.RequireFromString("43.05"),
		models.CurrencyEUR: decimal.RequireFromString("46.80"),
		models.CurrencyGBP: decimal.RequireFromString("54.20"),
	}
}

// RateFor returns the rate applied to c. Missing or zero rates fall back to 1,
// and the base currency is always 1.
func RateFor(c models.Currency, rates models.ExchangeRates) decimal.Decimal {
	if c == models.BaseCurrency {
		return one
	}
	rate, ok := rates[c]
	if !ok || rate.IsZero() {
		return one
	}
	return rate
}

// Normalize converts amount in currency c to the base currency.
func Normalize(amount decimal.Decimal, c models.Currency, rates models.ExchangeRates) decimal.Decimal {
	return amount.Mul(RateFor(c, rates))
}
