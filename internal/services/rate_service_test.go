package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"gelirgider/internal/models"
	"gelirgider/internal/testutil"
)

type failingSource struct{}

func (failingSource) Rates(context.Context) (models.ExchangeRates, error) {
	return nil, errors.New("upstream unavailable")
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestUpdateRate(t *testing.T) {
	t.Run("cascades", func(t *testing.T) {
		ledger := newLedger(t)
		tx := ledger.AddTransaction(ctx, testutil.TransactionForm(models.TransactionTypeIncome, "10", models.CurrencyGBP, "2026-01-15"))
		svc := NewRateService(ledger, nil)

		rates, err := svc.UpdateRate(ctx, models.CurrencyGBP, mustDecimal("50"))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, rates[models.CurrencyGBP], "50", "GBP rate")

		got, _ := ledger.Transaction(tx.ID)
		testutil.AssertDecimal(t, got.AmountTRY, "500", "amount_try")
	})

	t.Run("base_currency", func(t *testing.T) {
		svc := NewRateService(newLedger(t), nil)
		_, err := svc.UpdateRate(ctx, models.CurrencyTRY, mustDecimal("2"))
		testutil.AssertAppError(t, err, "BASE_CURRENCY_RATE")
	})

	t.Run("unsupported_currency", func(t *testing.T) {
		svc := NewRateService(newLedger(t), nil)
		_, err := svc.UpdateRate(ctx, "JPY", mustDecimal("2"))
		testutil.AssertAppError(t, err, "UNSUPPORTED_CURRENCY")
	})

	t.Run("non_positive_rate", func(t *testing.T) {
		svc := NewRateService(newLedger(t), nil)
		_, err := svc.UpdateRate(ctx, models.CurrencyUSD, decimal.Zero)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rate_above_limit", func(t *testing.T) {
		ledger := newLedger(t)
		svc := NewRateService(ledger, nil)
		_, err := svc.UpdateRate(ctx, models.CurrencyUSD, decimal.New(1, 50000000))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		testutil.AssertDecimal(t, ledger.ExchangeRates()[models.CurrencyUSD], "43.05", "USD rate")
	})
}

func TestResetRates(t *testing.T) {
	ledger := newLedger(t)
	svc := NewRateService(ledger, nil)
	_, _ = svc.UpdateRate(ctx, models.CurrencyUSD, mustDecimal("40"))

	rates := svc.ResetRates(ctx)
	testutil.AssertDecimal(t, rates[models.CurrencyUSD], "43.05", "USD rate")
}

func TestRefreshRates(t *testing.T) {
	t.Run("applies_changed_rates", func(t *testing.T) {
		ledger := newLedger(t)
		tx := ledger.AddTransaction(ctx, testutil.TransactionForm(models.TransactionTypeIncome, "10", models.CurrencyEUR, "2026-01-15"))
		source := NewStaticRateSource(models.ExchangeRates{
			models.CurrencyTRY: mustDecimal("9"),
			models.CurrencyEUR: mustDecimal("47"),
			models.CurrencyGBP: decimal.Zero,
		})
		svc := NewRateService(ledger, source)

		rates, err := svc.RefreshRates(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, rates[models.CurrencyEUR], "47", "EUR rate")
		testutil.AssertDecimal(t, rates[models.CurrencyTRY], "1", "TRY rate")
		testutil.AssertDecimal(t, rates[models.CurrencyGBP], "54.20", "GBP rate")

		got, _ := ledger.Transaction(tx.ID)
		testutil.AssertDecimal(t, got.AmountTRY, "470", "amount_try")
	})

	t.Run("no_source", func(t *testing.T) {
		svc := NewRateService(newLedger(t), nil)
		rates, err := svc.RefreshRates(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, rates[models.CurrencyUSD], "43.05", "USD rate")
	})

	t.Run("source_failure", func(t *testing.T) {
		svc := NewRateService(newLedger(t), failingSource{})
		_, err := svc.RefreshRates(ctx)
		testutil.AssertAppError(t, err, "RATE_SOURCE_UNAVAILABLE")
	})
}
