package testutil

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"gelirgider/internal/models"
)

// FixedTime is the instant returned by FixedClock.
var FixedTime = time.Date(2026, time.January, 20, 9, 30, 0, 0, time.UTC)

// FixedClock always returns FixedTime.
func FixedClock() time.Time {
	return FixedTime
}

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock starting at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current clock time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SequentialIDs returns an id generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// TransactionForm builds form data for a pending transaction.
func TransactionForm(typ models.TransactionType, amount string, c models.Currency, date string) models.TransactionFormData {
	category := "other_expense"
	if typ == models.TransactionTypeIncome {
		category = "consulting"
	}
	return models.TransactionFormData{
		Type:            typ,
		CompanyName:     "Test Co",
		Amount:          models.NewFormAmount(decimal.RequireFromString(amount)),
		Currency:        c,
		CategoryID:      category,
		TransactionDate: date,
		Status:          models.StatusPending,
	}
}

// MonthlyItem builds input for an active monthly recurring item.
func MonthlyItem(typ models.TransactionType, amount string, c models.Currency, day int, start string) models.RecurringItemInput {
	return models.RecurringItemInput{
		Type:        typ,
		CompanyName: "Monthly Co",
		Amount:      models.NewFormAmount(decimal.RequireFromString(amount)),
		Currency:    c,
		CategoryID:  "software",
		Frequency:   models.FrequencyMonthly,
		DayOfMonth:  &day,
		StartDate:   start,
	}
}
