package models

import "github.com/shopspring/decimal"

// Frequency is the repetition period of a recurring item.
type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// IsValid reports whether f is a known frequency.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// RecurringItem is a template from which transactions are materialized.
type RecurringItem struct {
	Base
	Type          TransactionType `json:"type"`
	CompanyName   string          `json:"company_name"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	CategoryID    string          `json:"category_id"`
	Frequency     Frequency       `json:"frequency"`
	DayOfMonth    *int            `json:"day_of_month,omitempty"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date,omitempty"`
	IsActive      bool            `json:"is_active"`
	LastGenerated string          `json:"last_generated,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// Day returns the configured day of month, or 1 when unset.
func (r *RecurringItem) Day() int {
	if r.DayOfMonth == nil || *r.DayOfMonth < 1 {
		return 1
	}
	return *r.DayOfMonth
}

// RecurringItemInput is the payload for creating a recurring item.
// A nil IsActive means active.
type RecurringItemInput struct {
	Type        TransactionType `json:"type"`
	CompanyName string          `json:"company_name"`
	Amount      FormAmount      `json:"amount"`
	Currency    Currency        `json:"currency"`
	CategoryID  string          `json:"category_id"`
	Frequency   Frequency       `json:"frequency"`
	DayOfMonth  *int            `json:"day_of_month,omitempty"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date,omitempty"`
	IsActive    *bool           `json:"is_active,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// RecurringItemPatch holds the fields of a partial recurring item update.
type RecurringItemPatch struct {
	Type        *TransactionType `json:"type,omitempty"`
	CompanyName *string          `json:"company_name,omitempty"`
	Amount      *FormAmount      `json:"amount,omitempty"`
	Currency    *Currency        `json:"currency,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Frequency   *Frequency       `json:"frequency,omitempty"`
	DayOfMonth  *int             `json:"day_of_month,omitempty"`
	StartDate   *string          `json:"start_date,omitempty"`
	EndDate     *string          `json:"end_date,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// Apply merges the non-nil fields of p into r.
func (p RecurringItemPatch) Apply(r *RecurringItem) {
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.CompanyName != nil {
		r.CompanyName = *p.CompanyName
	}
	if p.Amount != nil {
		r.Amount = p.Amount.Decimal
	}
	if p.Currency != nil {
		r.Currency = *p.Currency
	}
	if p.CategoryID != nil {
		r.CategoryID = *p.CategoryID
	}
	if p.Frequency != nil {
		r.Frequency = *p.Frequency
	}
	if p.DayOfMonth != nil {
		day := *p.DayOfMonth
		r.DayOfMonth = &day
	}
	if p.StartDate != nil {
		r.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		r.EndDate = *p.EndDate
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
}
