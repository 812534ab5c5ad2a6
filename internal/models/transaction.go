package models

import "github.com/shopspring/decimal"

// TransactionType represents the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// TransactionStatus represents the settlement state of a transaction.
// Received is the settled state for income, Paid for expense.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusReceived  TransactionStatus = "received"
	StatusPaid      TransactionStatus = "paid"
	StatusCancelled TransactionStatus = "cancelled"
)

// Statuses lists every status in display order.
var Statuses = []TransactionStatus{StatusPending, StatusReceived, StatusPaid, StatusCancelled}

// IsValid reports whether s is a known status.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusReceived, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Transaction is a single income or expense event.
// AmountTRY always equals Amount * ExchangeRate.
type Transaction struct {
	Base
	Type            TransactionType   `json:"type"`
	CompanyName     string            `json:"company_name"`
	Amount          decimal.Decimal   `json:"amount"`
	Currency        Currency          `json:"currency"`
	ExchangeRate    decimal.Decimal   `json:"exchange_rate"`
	AmountTRY       decimal.Decimal   `json:"amount_try"`
	CategoryID      string            `json:"category_id"`
	TransactionDate string            `json:"transaction_date"`
	Status          TransactionStatus `json:"status"`
	IsRecurring     bool              `json:"is_recurring"`
	RecurringID     string            `json:"recurring_id,omitempty"`
	Notes           string            `json:"notes,omitempty"`
}

// Counts reports whether the transaction contributes to totals.
func (t *Transaction) Counts() bool {
	return t.Status != StatusCancelled
}

// TransactionFormData is the payload submitted when a transaction is created.
// Frequency and DayOfMonth only matter when IsRecurring is set.
type TransactionFormData struct {
	Type            TransactionType   `json:"type"`
	CompanyName     string            `json:"company_name"`
	Amount          FormAmount        `json:"amount"`
	Currency        Currency          `json:"currency"`
	CategoryID      string            `json:"category_id"`
	TransactionDate string            `json:"transaction_date"`
	Status          TransactionStatus `json:"status"`
	IsRecurring     bool              `json:"is_recurring"`
	Frequency       Frequency         `json:"frequency,omitempty"`
	DayOfMonth      *int              `json:"day_of_month,omitempty"`
	Notes           string            `json:"notes,omitempty"`
}

// TransactionPatch holds the fields of a partial update. Nil fields are left
// untouched. The normalized amount and rate are not patchable; they are
// derived on every update.
type TransactionPatch struct {
	Type            *TransactionType   `json:"type,omitempty"`
	CompanyName     *string            `json:"company_name,omitempty"`
	Amount          *FormAmount        `json:"amount,omitempty"`
	Currency        *Currency          `json:"currency,omitempty"`
	CategoryID      *string            `json:"category_id,omitempty"`
	TransactionDate *string            `json:"transaction_date,omitempty"`
	Status          *TransactionStatus `json:"status,omitempty"`
	IsRecurring     *bool              `json:"is_recurring,omitempty"`
	RecurringID     *string            `json:"recurring_id,omitempty"`
	Notes           *string            `json:"notes,omitempty"`
}

// Apply merges the non-nil fields of p into t.
func (p TransactionPatch) Apply(t *Transaction) {
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.CompanyName != nil {
		t.CompanyName = *p.CompanyName
	}
	if p.Amount != nil {
		t.Amount = p.Amount.Decimal
	}
	if p.Currency != nil {
		t.Currency = *p.Currency
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.TransactionDate != nil {
		t.TransactionDate = *p.TransactionDate
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.IsRecurring != nil {
		t.IsRecurring = *p.IsRecurring
	}
	if p.RecurringID != nil {
		t.RecurringID = *p.RecurringID
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
}
