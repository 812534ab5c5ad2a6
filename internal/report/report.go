// Package report derives totals and summaries from a ledger snapshot.
//
// Every function here is pure: it reads the transactions it is given and
// never mutates them.
package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gelirgider/internal/catalog"
	"gelirgider/internal/models"
)

// FilterAll disables the type filter.
const FilterAll = "all"

// Filter selects the transactions of a view.
type Filter struct {
	Year  int
	Month time.Month
	// Type is "all", "income" or "expense". Empty means all.
	Type   string
	Search string
}

// Totals holds income and expense sums in the base currency.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// MonthSummary is one month of the yearly report.
type MonthSummary struct {
	Month   int             `json:"month"`
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Margin  decimal.Decimal `json:"margin"`
}

// Matches reports whether tx passes every condition of f.
func (f Filter) Matches(tx *models.Transaction) bool {
	if !models.InPeriod(tx.TransactionDate, f.Year, f.Month) {
		return false
	}
	if f.Type != "" && f.Type != FilterAll && string(tx.Type) != f.Type {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(tx.CompanyName), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// FilteredTransactions returns the transactions matching f, in their
// original order.
func FilteredTransactions(txs []models.Transaction, f Filter) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for i := range txs {
		if f.Matches(&txs[i]) {
			out = append(out, txs[i])
		}
	}
	return out
}

// MonthlyTotals sums the filtered transactions. Cancelled transactions do not
// count.
func MonthlyTotals(txs []models.Transaction, f Filter) Totals {
	return sum(FilteredTransactions(txs, f))
}

// YearlyData returns twelve monthly summaries for year over the whole
// collection, ignoring type and search filters.
func YearlyData(txs []models.Transaction, year int) []MonthSummary {
	months := make([]MonthSummary, 12)
	buckets := make([][]models.Transaction, 12)
	for i := range txs {
		d, ok := models.ParseDate(txs[i].TransactionDate)
		if !ok || d.Year() != year {
			continue
		}
		buckets[d.Month()-1] = append(buckets[d.Month()-1], txs[i])
	}
	for i := range months {
		m := time.Month(i + 1)
		t := sum(buckets[i])
		months[i] = MonthSummary{
			Month:   int(m),
			Label:   catalog.MonthName(m),
			Income:  t.Income,
			Expense: t.Expense,
			Net:     t.Net,
			Margin:  Margin(t),
		}
	}
	return months
}

// YearTotals adds up the monthly summaries.
func YearTotals(months []MonthSummary) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, m := range months {
		t.Income = t.Income.Add(m.Income)
		t.Expense = t.Expense.Add(m.Expense)
	}
	t.Net = t.Income.Sub(t.Expense)
	return t
}

// Margin returns net as a percentage of income, rounded to one decimal. It is
// zero when there is no income.
func Margin(t Totals) decimal.Decimal {
	if !t.Income.IsPositive() {
		return decimal.Zero
	}
	return t.Net.Div(t.Income).Mul(decimal.NewFromInt(100)).Round(1)
}

func sum(txs []models.Transaction) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for i := range txs {
		tx := &txs[i]
		if !tx.Counts() {
			continue
		}
		switch tx.Type {
		case models.TransactionTypeIncome:
			t.Income = t.Income.Add(tx.AmountTRY)
		case models.TransactionTypeExpense:
			t.Expense = t.Expense.Add(tx.AmountTRY)
		}
	}
	t.Net = t.Income.Sub(t.Expense)
	return t
}
