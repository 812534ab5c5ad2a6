package services

import (
	"context"
	"time"

	apperrors "gelirgider/internal/errors"
	"gelirgider/internal/models"
	"gelirgider/internal/report"
)

// recurringService handles recurring template business logic.
type recurringService struct {
	ledger Ledger
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(ledger Ledger) RecurringServicer {
	return &recurringService{ledger: ledger}
}

// ListRecurringItems returns every template with its amount projected at
// live rates.
func (s *recurringService) ListRecurringItems(_ context.Context) (*RecurringList, error) {
	snap := s.ledger.Snapshot()
	items := report.ProjectRecurring(snap.RecurringItems, snap.ExchangeRates)
	return &RecurringList{Items: items, Totals: report.RecurringTotals(items)}, nil
}

// CreateRecurringItem validates in and creates a template.
func (s *recurringService) CreateRecurringItem(ctx context.Context, in models.RecurringItemInput) (*models.RecurringItem, error) {
	if !in.Type.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if !in.Currency.IsValid() {
		return nil, apperrors.ErrUnsupportedCurrency
	}
	if !in.Frequency.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "frequency must be weekly, monthly or yearly")
	}
	if !models.InRange(in.Amount.Decimal) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero and at most 10^15")
	}
	if _, ok := models.ParseDate(in.StartDate); !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date must be a YYYY-MM-DD date")
	}
	if err := validateEndDate(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	if err := validateDay(in.DayOfMonth); err != nil {
		return nil, err
	}

	item := s.ledger.AddRecurringItem(ctx, in)
	return &item, nil
}

// UpdateRecurringItem merges patch into an existing template.
func (s *recurringService) UpdateRecurringItem(ctx context.Context, id string, patch models.RecurringItemPatch) (*models.RecurringItem, error) {
	current, ok := s.ledger.RecurringItem(id)
	if !ok {
		return nil, apperrors.ErrRecurringItemNotFound
	}
	if patch.Type != nil && !patch.Type.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if patch.Currency != nil && !patch.Currency.IsValid() {
		return nil, apperrors.ErrUnsupportedCurrency
	}
	if patch.Frequency != nil && !patch.Frequency.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "frequency must be weekly, monthly or yearly")
	}
	if patch.Amount != nil && !models.InRange(patch.Amount.Decimal) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero and at most 10^15")
	}
	if err := validateDay(patch.DayOfMonth); err != nil {
		return nil, err
	}

	start, end := current.StartDate, current.EndDate
	if patch.StartDate != nil {
		if _, ok := models.ParseDate(*patch.StartDate); !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date must be a YYYY-MM-DD date")
		}
		start = *patch.StartDate
	}
	if patch.EndDate != nil {
		end = *patch.EndDate
	}
	if err := validateEndDate(start, end); err != nil {
		return nil, err
	}

	item, ok := s.ledger.UpdateRecurringItem(ctx, id, patch)
	if !ok {
		return nil, apperrors.ErrRecurringItemNotFound
	}
	return &item, nil
}

// DeleteRecurringItem removes a template. Unknown ids are not an error.
func (s *recurringService) DeleteRecurringItem(ctx context.Context, id string) error {
	s.ledger.DeleteRecurringItem(ctx, id)
	return nil
}

// ToggleRecurringItem pauses or resumes a template.
func (s *recurringService) ToggleRecurringItem(ctx context.Context, id string) (*models.RecurringItem, error) {
	item, ok := s.ledger.ToggleRecurringActive(ctx, id)
	if !ok {
		return nil, apperrors.ErrRecurringItemNotFound
	}
	return &item, nil
}

// GenerateRecurring materializes the due templates of a month.
func (s *recurringService) GenerateRecurring(ctx context.Context, year int, month time.Month) ([]models.Transaction, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	generated := s.ledger.GenerateRecurring(ctx, year, month)
	if generated == nil {
		generated = []models.Transaction{}
	}
	return generated, nil
}

// validateEndDate allows an empty end date; otherwise it must parse and not
// precede the start date.
func validateEndDate(start, end string) error {
	if end == "" {
		return nil
	}
	e, ok := models.ParseDate(end)
	if !ok {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must be a YYYY-MM-DD date")
	}
	if s, ok := models.ParseDate(start); ok && e.Before(s) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must not be before start_date")
	}
	return nil
}
