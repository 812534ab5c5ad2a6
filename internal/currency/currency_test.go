package currency

import (
	"testing"

	"github.com/shopspring/decimal"

	"gelirgider/internal/models"
)

func TestNormalize(t *testing.T) {
	rates := models.ExchangeRates{
		models.CurrencyTRY: decimal.NewFromInt(1),
		models.CurrencyUSD: decimal.RequireFromString("43.05"),
	}

	t.Run("usd_uses_table_rate", func(t *testing.T) {
		got := Normalize(decimal.NewFromInt(100), models.CurrencyUSD, rates)
		if !got.Equal(decimal.NewFromInt(4305)) {
			t.Errorf("expected 4305, got %s", got)
		}
	})

	t.Run("missing_currency_uses_one", func(t *testing.T) {
		got := Normalize(decimal.NewFromInt(250), models.CurrencyGBP, rates)
		if !got.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected 250, got %s", got)
		}
	})

	t.Run("zero_rate_uses_one", func(t *testing.T) {
		zeroed := models.ExchangeRates{models.CurrencyEUR: decimal.Zero}
		got := Normalize(decimal.NewFromInt(10), models.CurrencyEUR, zeroed)
		if !got.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected 10, got %s", got)
		}
	})

	t.Run("base_currency_ignores_table", func(t *testing.T) {
		odd := models.ExchangeRates{models.CurrencyTRY: decimal.NewFromInt(3)}
		got := Normalize(decimal.NewFromInt(500), models.CurrencyTRY, odd)
		if !got.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected 500, got %s", got)
		}
	})

	t.Run("nil_table", func(t *testing.T) {
		got := Normalize(decimal.NewFromInt(7), models.CurrencyUSD, nil)
		if !got.Equal(decimal.NewFromInt(7)) {
			t.Errorf("expected 7, got %s", got)
		}
	})
}

func TestDefaultRates(t *testing.T) {
	rates := DefaultRates()
	if !rates[models.CurrencyTRY].Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected TRY rate 1, got %s", rates[models.CurrencyTRY])
	}
	if !rates[models.CurrencyEUR].Equal(decimal.RequireFromString("46.8")) {
		t.Errorf("expected EUR rate 46.80, got %s", rates[models.CurrencyEUR])
	}

	rates[models.CurrencyUSD] = decimal.NewFromInt(1)
	if DefaultRates()[models.CurrencyUSD].Equal(decimal.NewFromInt(1)) {
		t.Error("DefaultRates should return an independent copy")
	}
}
