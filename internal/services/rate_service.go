package services

import (
	"context"

	"github.com/shopspring/decimal"

	apperrors "gelirgider/internal/errors"
	"gelirgider/internal/logger"
	"gelirgider/internal/models"
)

// RateSource supplies current exchange rates against the base currency.
type RateSource interface {
	Rates(ctx context.Context) (models.ExchangeRates, error)
}

// StaticRateSource always returns the same table.
type StaticRateSource struct {
	rates models.ExchangeRates
}

// NewStaticRateSource creates a source serving rates.
func NewStaticRateSource(rates models.ExchangeRates) *StaticRateSource {
	return &StaticRateSource{rates: rates.Clone()}
}

// Rates implements RateSource.
func (s *StaticRateSource) Rates(context.Context) (models.ExchangeRates, error) {
	return s.rates.Clone(), nil
}

// rateService handles exchange rate management.
type rateService struct {
	ledger Ledger
	source RateSource
}

// NewRateService creates a new RateServicer. source may be nil, in which case
// refreshing is a no-op.
func NewRateService(ledger Ledger, source RateSource) RateServicer {
	return &rateService{ledger: ledger, source: source}
}

// GetRates returns the current table.
func (s *rateService) GetRates(_ context.Context) models.ExchangeRates {
	return s.ledger.ExchangeRates()
}

// UpdateRate sets the rate of c and cascades it to the stored transactions.
func (s *rateService) UpdateRate(ctx context.Context, c models.Currency, rate decimal.Decimal) (models.ExchangeRates, error) {
	if !c.IsValid() {
		return nil, apperrors.ErrUnsupportedCurrency
	}
	if c == models.BaseCurrency {
		return nil, apperrors.ErrBaseCurrencyRate
	}
	if !models.InRange(rate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rate must be greater than zero and at most 10^15")
	}
	s.ledger.UpdateExchangeRate(ctx, c, rate)
	return s.ledger.ExchangeRates(), nil
}

// ResetRates restores the default table.
func (s *rateService) ResetRates(ctx context.Context) models.ExchangeRates {
	s.ledger.ResetExchangeRates(ctx)
	return s.ledger.ExchangeRates()
}

// RefreshRates pulls the table from the configured source and applies every
// rate that differs from the current one.
func (s *rateService) RefreshRates(ctx context.Context) (models.ExchangeRates, error) {
	if s.source == nil {
		return s.ledger.ExchangeRates(), nil
	}
	fetched, err := s.source.Rates(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRateSource, err)
	}

	current := s.ledger.ExchangeRates()
	changed := 0
	for _, c := range models.Currencies {
		rate, ok := fetched[c]
		if c == models.BaseCurrency || !ok || !models.InRange(rate) {
			continue
		}
		if current[c].Equal(rate) {
			continue
		}
		s.ledger.UpdateExchangeRate(ctx, c, rate)
		changed++
	}
	logger.Named("rates").Infow("refreshed exchange rates", "changed", changed)
	return s.ledger.ExchangeRates(), nil
}
