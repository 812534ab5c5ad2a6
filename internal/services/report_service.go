package services

import (
	"context"

	"gelirgider/internal/catalog"
	"gelirgider/internal/report"
)

// reportService derives reports from ledger snapshots.
type reportService struct {
	ledger Ledger
}

// NewReportService creates a new ReportServicer.
func NewReportService(ledger Ledger) ReportServicer {
	return &reportService{ledger: ledger}
}

// MonthlyReport returns the dashboard summary of the filtered month.
func (s *reportService) MonthlyReport(ctx context.Context, filter TransactionFilter) (*MonthlyReport, error) {
	if err := validatePeriod(filter.Year, filter.Month); err != nil {
		return nil, err
	}
	if filter.Generate {
		s.ledger.GenerateRecurring(ctx, filter.Year, filter.Month)
	}

	snap := s.ledger.Snapshot()
	return &MonthlyReport{
		Year:    filter.Year,
		Month:   int(filter.Month),
		Label:   catalog.MonthName(filter.Month),
		Summary: report.DashboardSummary(snap.Transactions, filter.toReport()),
		Rates:   snap.ExchangeRates,
	}, nil
}

// YearlyReport returns the twelve monthly summaries of year.
func (s *reportService) YearlyReport(_ context.Context, year int) (*YearlyReport, error) {
	if err := validatePeriod(year, 1); err != nil {
		return nil, err
	}

	months := report.YearlyData(s.ledger.Snapshot().Transactions, year)
	totals := report.YearTotals(months)
	return &YearlyReport{
		Year:   year,
		Months: months,
		Totals: totals,
		Margin: report.Margin(totals),
	}, nil
}
