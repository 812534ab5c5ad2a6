package services

import (
	"context"
	"time"

	apperrors "gelirgider/internal/errors"
	"gelirgider/internal/models"
	"gelirgider/internal/pagination"
	"gelirgider/internal/report"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	ledger Ledger
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(ledger Ledger) TransactionServicer {
	return &transactionService{ledger: ledger}
}

// ListTransactions returns a page of the transactions matching filter, in
// insertion order.
func (s *transactionService) ListTransactions(
	ctx context.Context,
	filter TransactionFilter,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.Transaction], error) {
	if err := validatePeriod(filter.Year, filter.Month); err != nil {
		return nil, err
	}
	if filter.Generate {
		s.ledger.GenerateRecurring(ctx, filter.Year, filter.Month)
	}

	txs := report.FilteredTransactions(s.ledger.Snapshot().Transactions, filter.toReport())
	resp := pagination.Slice(txs, page)
	return &resp, nil
}

// GetTransaction returns the transaction with the given id.
func (s *transactionService) GetTransaction(_ context.Context, id string) (*models.Transaction, error) {
	tx, ok := s.ledger.Transaction(id)
	if !ok {
		return nil, apperrors.ErrTransactionNotFound
	}
	return &tx, nil
}

// CreateTransaction validates form and records it.
func (s *transactionService) CreateTransaction(ctx context.Context, form models.TransactionFormData) (*models.Transaction, error) {
	if !form.Type.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if !form.Currency.IsValid() {
		return nil, apperrors.ErrUnsupportedCurrency
	}
	if !models.InRange(form.Amount.Decimal) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero and at most 10^15")
	}
	if _, ok := models.ParseDate(form.TransactionDate); !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction_date must be a YYYY-MM-DD date")
	}
	if form.Status != "" && !form.Status.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown status")
	}
	if form.IsRecurring && form.Frequency != "" && !form.Frequency.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "frequency must be weekly, monthly or yearly")
	}
	if err := validateDay(form.DayOfMonth); err != nil {
		return nil, err
	}

	tx := s.ledger.AddTransaction(ctx, form)
	return &tx, nil
}

// UpdateTransaction merges patch into an existing transaction.
func (s *transactionService) UpdateTransaction(ctx context.Context, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	if patch.Type != nil && !patch.Type.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if patch.Currency != nil && !patch.Currency.IsValid() {
		return nil, apperrors.ErrUnsupportedCurrency
	}
	if patch.Amount != nil && !models.InRange(patch.Amount.Decimal) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero and at most 10^15")
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown status")
	}
	if patch.TransactionDate != nil {
		if _, ok := models.ParseDate(*patch.TransactionDate); !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction_date must be a YYYY-MM-DD date")
		}
	}

	tx, ok := s.ledger.UpdateTransaction(ctx, id, patch)
	if !ok {
		return nil, apperrors.ErrTransactionNotFound
	}
	return &tx, nil
}

// DeleteTransaction removes a transaction. Unknown ids are not an error.
func (s *transactionService) DeleteTransaction(ctx context.Context, id string) error {
	s.ledger.DeleteTransaction(ctx, id)
	return nil
}

func (f TransactionFilter) toReport() report.Filter {
	return report.Filter{Year: f.Year, Month: f.Month, Type: f.Type, Search: f.Search}
}

func validatePeriod(year int, month time.Month) error {
	if year < 1 || year > 9999 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "year is out of range")
	}
	if month < time.January || month > time.December {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	return nil
}

func validateDay(day *int) error {
	if day != nil && (*day < 1 || *day > 31) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "day_of_month must be between 1 and 31")
	}
	return nil
}
