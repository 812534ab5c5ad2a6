package store

import (
	"time"

	"github.com/shopspring/decimal"

	"gelirgider/internal/currency"
	"gelirgider/internal/models"
)

type demoEntry struct {
	id       string
	typ      models.TransactionType
	company  string
	amount   int64
	currency models.Currency
	category string
	day      int
	status   models.TransactionStatus
	notes    string
}

var demoEntries = []demoEntry{
	{"1", models.TransactionTypeIncome, "Istanbul Care", 6300, models.CurrencyUSD, "medical", 15, models.StatusReceived, ""},
	{"2", models.TransactionTypeIncome, "Hairport Clinic", 3500, models.CurrencyEUR, "medical", 10, models.StatusReceived, ""},
	{"3", models.TransactionTypeIncome, "Suzermed Clinic", 1150, models.CurrencyEUR, "medical", 12, models.StatusPending, ""},
	{"4", models.TransactionTypeIncome, "Venus Clinic", 50000, models.CurrencyTRY, "medical", 20, models.StatusPending, ""},
	{"5", models.TransactionTypeIncome, "Via Dental", 25000, models.CurrencyTRY, "dental", 18, models.StatusReceived, ""},
	{"6", models.TransactionTypeIncome, "Halime Maaş", 80000, models.CurrencyTRY, "salary", 1, models.StatusReceived, ""},
	{"7", models.TransactionTypeExpense, "EV Giderleri", 20000, models.CurrencyTRY, "housing", 5, models.StatusPaid, "Faturalar, telefon, pazar"},
	{"8", models.TransactionTypeExpense, "Dijital Uygulamalar", 250, models.CurrencyUSD, "software", 1, models.StatusPaid, ""},
	{"9", models.TransactionTypeExpense, "Kişisel Harcamalar", 20000, models.CurrencyTRY, "personal", 15, models.StatusPaid, ""},
	{"10", models.TransactionTypeExpense, "Araç Giderleri", 8000, models.CurrencyTRY, "transport", 10, models.StatusPaid, ""},
}

// DemoState returns the sample ledger: ten monthly templates starting in
// January 2026, each with its January transaction already recorded.
// Recurring items keep the fixed ids "1" to "10".
func DemoState(now time.Time, newID func() string) State {
	rates := currency.DefaultRates()
	st := State{ExchangeRates: rates}

	for _, e := range demoEntries {
		day := e.day
		item := models.RecurringItem{
			Type:        e.typ,
			CompanyName: e.company,
			Amount:      decimal.NewFromInt(e.amount),
			Currency:    e.currency,
			CategoryID:  e.category,
			Frequency:   models.FrequencyMonthly,
			DayOfMonth:  &day,
			StartDate:   "2026-01-01",
			IsActive:    true,
			Notes:       e.notes,
		}
		item.Stamp(e.id, now)

		tx := models.Transaction{
			Type:            e.typ,
			CompanyName:     e.company,
			Amount:          item.Amount,
			Currency:        e.currency,
			CategoryID:      e.category,
			TransactionDate: models.FormatDate(time.Date(2026, time.January, e.day, 0, 0, 0, 0, time.UTC)),
			Status:          e.status,
			IsRecurring:     true,
			RecurringID:     e.id,
			Notes:           e.notes,
		}
		tx.Stamp(newID(), now)
		normalize(&tx, rates)

		st.RecurringItems = append(st.RecurringItems, item)
		st.Transactions = append(st.Transactions, tx)
	}
	return st
}
