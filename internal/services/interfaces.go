package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"gelirgider/internal/models"
	"gelirgider/internal/pagination"
	"gelirgider/internal/report"
	"gelirgider/internal/store"
)

// Ledger is the state owner the services operate on. *store.Store
// implements it.
type Ledger interface {
	AddTransaction(ctx context.Context, form models.TransactionFormData) models.Transaction
	UpdateTransaction(ctx context.Context, id string, patch models.TransactionPatch) (models.Transaction, bool)
	DeleteTransaction(ctx context.Context, id string) bool
	AddRecurringItem(ctx context.Context, in models.RecurringItemInput) models.RecurringItem
	UpdateRecurringItem(ctx context.Context, id string, patch models.RecurringItemPatch) (models.RecurringItem, bool)
	DeleteRecurringItem(ctx context.Context, id string) bool
	ToggleRecurringActive(ctx context.Context, id string) (models.RecurringItem, bool)
	UpdateExchangeRate(ctx context.Context, c models.Currency, rate decimal.Decimal) bool
	ResetExchangeRates(ctx context.Context)
	GenerateRecurring(ctx context.Context, year int, month time.Month) []models.Transaction
	Snapshot() store.State
	Transaction(id string) (models.Transaction, bool)
	RecurringItem(id string) (models.RecurringItem, bool)
	ExchangeRates() models.ExchangeRates
}

var _ Ledger = (*store.Store)(nil)

// TransactionFilter holds the filter parameters for listing transactions.
type TransactionFilter struct {
	Year   int
	Month  time.Month
	Type   string
	Search string
	// Generate materializes due recurring items of the period first.
	Generate bool
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	ListTransactions(ctx context.Context, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	CreateTransaction(ctx context.Context, form models.TransactionFormData) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, patch models.TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// RecurringList is the recurring template listing with live-rate totals.
type RecurringList struct {
	Items  []report.Projection `json:"items"`
	Totals report.Totals       `json:"totals"`
}

// RecurringServicer defines the contract for recurring template business logic.
type RecurringServicer interface {
	ListRecurringItems(ctx context.Context) (*RecurringList, error)
	CreateRecurringItem(ctx context.Context, in models.RecurringItemInput) (*models.RecurringItem, error)
	UpdateRecurringItem(ctx context.Context, id string, patch models.RecurringItemPatch) (*models.RecurringItem, error)
	DeleteRecurringItem(ctx context.Context, id string) error
	ToggleRecurringItem(ctx context.Context, id string) (*models.RecurringItem, error)
	GenerateRecurring(ctx context.Context, year int, month time.Month) ([]models.Transaction, error)
}

// RateServicer defines the contract for exchange rate management.
type RateServicer interface {
	GetRates(ctx context.Context) models.ExchangeRates
	UpdateRate(ctx context.Context, c models.Currency, rate decimal.Decimal) (models.ExchangeRates, error)
	ResetRates(ctx context.Context) models.ExchangeRates
	RefreshRates(ctx context.Context) (models.ExchangeRates, error)
}

// MonthlyReport is the dashboard view of one month.
type MonthlyReport struct {
	Year    int                  `json:"year"`
	Month   int                  `json:"month"`
	Label   string               `json:"label"`
	Summary report.Summary       `json:"summary"`
	Rates   models.ExchangeRates `json:"exchange_rates"`
}

// YearlyReport is the month-by-month view of one year.
type YearlyReport struct {
	Year   int                   `json:"year"`
	Months []report.MonthSummary `json:"months"`
	Totals report.Totals         `json:"totals"`
	Margin decimal.Decimal       `json:"margin"`
}

// ReportServicer defines the contract for aggregated reports.
type ReportServicer interface {
	MonthlyReport(ctx context.Context, filter TransactionFilter) (*MonthlyReport, error)
	YearlyReport(ctx context.Context, year int) (*YearlyReport, error)
}

// StatusOption is a status with its display label.
type StatusOption struct {
	Value models.TransactionStatus `json:"value"`
	Label string                   `json:"label"`
}

// CatalogServicer defines the contract for category and status lookups.
type CatalogServicer interface {
	ListCategories(t *models.TransactionType) []models.Category
	GetCategory(t models.TransactionType, id string) (*models.Category, error)
	ListStatuses() []StatusOption
}
