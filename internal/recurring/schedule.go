// Package recurring computes when recurring items fall due.
//
// Each frequency has its own Schedule. A schedule only answers "which dates
// in this month?"; materializing transactions and checking for duplicates is
// the store's job. Being active is the only gate: start and end dates anchor
// the weekday or month of a schedule but never suppress an occurrence.
package recurring

import (
	"time"

	"gelirgider/internal/models"
)

// MaxDay is the highest day of month a template is materialized on. Later
// days are clamped so every month has a valid date.
const MaxDay = 28

// Schedule yields the occurrence dates of a recurring item within a month.
type Schedule interface {
	// Occurrences returns the dates of item in the given month, in order.
	Occurrences(item *models.RecurringItem, year int, month time.Month) []time.Time
	// SamePeriod reports whether a date already covers the occurrence at due.
	SamePeriod(existing, due time.Time) bool
}

// MonthlySchedule materializes once a month on the clamped day of month.
type MonthlySchedule struct{}

// Occurrences implements Schedule.
func (MonthlySchedule) Occurrences(item *models.RecurringItem, year int, month time.Month) []time.Time {
	return []time.Time{clampedDate(item, year, month)}
}

// SamePeriod implements Schedule.
func (MonthlySchedule) SamePeriod(existing, due time.Time) bool {
	return sameMonth(existing, due)
}

// YearlySchedule materializes once a year, in the month of the start date.
type YearlySchedule struct{}

// Occurrences implements Schedule.
func (YearlySchedule) Occurrences(item *models.RecurringItem, year int, month time.Month) []time.Time {
	anchor := time.January
	if start, ok := models.ParseDate(item.StartDate); ok {
		anchor = start.Month()
	}
	if month != anchor {
		return nil
	}
	return []time.Time{clampedDate(item, year, month)}
}

// SamePeriod implements Schedule.
func (YearlySchedule) SamePeriod(existing, due time.Time) bool {
	return sameMonth(existing, due)
}

// WeeklySchedule materializes on every weekday of the month matching the
// start date's weekday.
type WeeklySchedule struct{}

// Occurrences implements Schedule.
func (WeeklySchedule) Occurrences(item *models.RecurringItem, year int, month time.Month) []time.Time {
	weekday := time.Monday
	if start, ok := models.ParseDate(item.StartDate); ok {
		weekday = start.Weekday()
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	var dates []time.Time
	for d := first.AddDate(0, 0, offset); d.Month() == month; d = d.AddDate(0, 0, 7) {
		dates = append(dates, d)
	}
	return dates
}

// SamePeriod implements Schedule.
func (WeeklySchedule) SamePeriod(existing, due time.Time) bool {
	return existing.Equal(due)
}

var schedules = map[models.Frequency]Schedule{
	models.FrequencyWeekly:  WeeklySchedule{},
	models.FrequencyMonthly: MonthlySchedule{},
	models.FrequencyYearly:  YearlySchedule{},
}

// ScheduleFor returns the schedule registered for f.
func ScheduleFor(f models.Frequency) (Schedule, bool) {
	s, ok := schedules[f]
	return s, ok
}

// Due returns the schedule of item and its occurrence dates in the given
// month. Inactive items and unknown frequencies have no schedule and no dates.
func Due(item *models.RecurringItem, year int, month time.Month) (Schedule, []time.Time) {
	if !item.IsActive {
		return nil, nil
	}
	s, ok := ScheduleFor(item.Frequency)
	if !ok {
		return nil, nil
	}
	return s, s.Occurrences(item, year, month)
}

func clampedDate(item *models.RecurringItem, year int, month time.Month) time.Time {
	return time.Date(year, month, min(item.Day(), MaxDay), 0, 0, 0, 0, time.UTC)
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
