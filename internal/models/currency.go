package models

import "github.com/shopspring/decimal"

// Currency is one of the supported ISO 4217 codes.
type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// BaseCurrency is the currency every normalized amount is expressed in.
const BaseCurrency = CurrencyTRY

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{CurrencyTRY, CurrencyUSD, CurrencyEUR, CurrencyGBP}

// IsValid reports whether c is a supported currency.
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyTRY, CurrencyUSD, CurrencyEUR, CurrencyGBP:
		return true
	}
	return false
}

// ExchangeRates maps a currency to its rate against the base currency.
type ExchangeRates map[Currency]decimal.Decimal

// Clone returns an independent copy of the table.
func (r ExchangeRates) Clone() ExchangeRates {
	out := make(ExchangeRates, len(r))
	for c, rate := range r {
		out[c] = rate
	}
	return out
}
