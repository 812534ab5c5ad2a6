package report

import (
	"github.com/shopspring/decimal"

	"gelirgider/internal/currency"
	"gelirgider/internal/models"
)

// Summary is the dashboard view of a filtered month.
type Summary struct {
	Totals
	IncomeCount   int             `json:"income_count"`
	ExpenseCount  int             `json:"expense_count"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	PendingCount  int             `json:"pending_count"`
	Margin        decimal.Decimal `json:"margin"`
}

// DashboardSummary computes the totals of the filtered transactions along
// with per-type counts and the outstanding pending amount. Counts include
// cancelled transactions; amounts do not.
func DashboardSummary(txs []models.Transaction, f Filter) Summary {
	filtered := FilteredTransactions(txs, f)
	s := Summary{
		Totals:        sum(filtered),
		PendingAmount: decimal.Zero,
	}
	for i := range filtered {
		tx := &filtered[i]
		switch tx.Type {
		case models.TransactionTypeIncome:
			s.IncomeCount++
		case models.TransactionTypeExpense:
			s.ExpenseCount++
		}
		if tx.Status == models.StatusPending {
			s.PendingAmount = s.PendingAmount.Add(tx.AmountTRY)
			s.PendingCount++
		}
	}
	s.Margin = Margin(s.Totals)
	return s
}

// Projection is a recurring template with its amount at live rates.
type Projection struct {
	models.RecurringItem
	AmountTRY decimal.Decimal `json:"amount_try"`
}

// ProjectRecurring converts each template amount into the base currency.
func ProjectRecurring(items []models.RecurringItem, rates models.ExchangeRates) []Projection {
	out := make([]Projection, len(items))
	for i, item := range items {
		out[i] = Projection{
			RecurringItem: item,
			AmountTRY:     currency.Normalize(item.Amount, item.Currency, rates),
		}
	}
	return out
}

// RecurringTotals sums the monthly projection of active templates by type.
// Weekly templates are not scaled; every active item counts once.
func RecurringTotals(projections []Projection) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, p := range projections {
		if !p.IsActive {
			continue
		}
		switch p.Type {
		case models.TransactionTypeIncome:
			t.Income = t.Income.Add(p.AmountTRY)
		case models.TransactionTypeExpense:
			t.Expense = t.Expense.Add(p.AmountTRY)
		}
	}
	t.Net = t.Income.Sub(t.Expense)
	return t
}
