package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"farmstead/internal/model"
	"farmstead/internal/repository"
	"farmstead/pkg/apierror"
)

// AnalyticsService turns the reporting queries into the chart-ready payloads
// the dashboards consume. Every report is a pure read; nothing here mutates
// state.
type AnalyticsService struct {
	finance *repository.FinanceRepository
	reports *repository.ReportRepository
	now     func() time.Time
}

func NewAnalyticsService(finance *repository.FinanceRepository, reports *repository.ReportRepository) *AnalyticsService {
	return &AnalyticsService{finance: finance, reports: reports, now: time.Now}
}

// Summary reports income, expenses and profit for one month or one year,
// with growth computed against the preceding period of equal length.
// month is zero-based, matching the charting client.
func (s *AnalyticsService) Summary(ctx context.Context, timeFilter string, yearStr string, monthStr string) (model.FinanceSummary, error) {
	start, end := s.periodRange(timeFilter, yearStr, monthStr)

	income, expenses, count, err := s.finance.PeriodTotals(ctx, start, end)
	if err != nil {
		return model.FinanceSummary{}, err
	}

	monthly, err := s.finance.MonthlySeries(ctx, start, end)
	if err != nil {
		return model.FinanceSummary{}, err
	}

	// Previous period of the same length, ending just before this one.
	duration := end.Sub(start)
	prevIncome, prevExpenses, _, err := s.finance.PeriodTotals(ctx, start.Add(-duration), start.Add(-time.Nanosecond))
	if err != nil {
		return model.FinanceSummary{}, err
	}

	summary := model.FinanceSummary{
		Income:           income,
		Expenses:         expenses,
		Profit:           income - expenses,
		TransactionCount: count,
		MonthlyData:      monthly,
	}

	summary.IncomeGrowth = round1(growth(income, prevIncome))
	summary.ExpenseGrowth = round1(growth(expenses, prevExpenses))
	summary.ProfitGrowth = round1(growth(income-expenses, prevIncome-prevExpenses))

	return summary, nil
}

func (s *AnalyticsService) Categories(ctx context.Context, startStr string, endStr string, txType string) ([]model.CategoryTotal, error) {
	start := time.Unix(0, 0).UTC()
	if startStr != "" {
		parsed, err := parseDate(startStr)
		if err != nil {
			return nil, apierror.BadRequest("invalid startDate")
		}
		start = parsed
	}

	end := s.now().UTC()
	if endStr != "" {
		parsed, err := parseDate(endStr)
		if err != nil {
			return nil, apierror.BadRequest("invalid endDate")
		}
		end = parsed
	}

	txType = strings.TrimSpace(txType)
	if txType != "" && txType != model.TransactionIncome && txType != model.TransactionExpense {
		return nil, apierror.BadRequest("type must be income or expense")
	}

	return s.finance.CategoryTotals(ctx, start, end, txType)
}

// MonthlyTrends returns twelve entries, one per calendar month, zeros where
// no transactions exist.
func (s *AnalyticsService) MonthlyTrends(ctx context.Context, yearStr string) (int, []model.MonthlyPoint, error) {
	year := s.now().Year()
	if yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			return 0, nil, apierror.BadRequest("invalid year")
		}
		year = parsed
	}

	points, err := s.finance.MonthlyTrends(ctx, year)
	if err != nil {
		return 0, nil, err
	}

	byMonth := make(map[int]model.MonthlyPoint, len(points))
	for _, p := range points {
		byMonth[p.Month] = p
	}

	complete := make([]model.MonthlyPoint, 0, 12)
	for month := 1; month <= 12; month++ {
		if p, ok := byMonth[month]; ok {
			complete = append(complete, p)
			continue
		}
		complete = append(complete, model.MonthlyPoint{Month: month})
	}
	return year, complete, nil
}

func (s *AnalyticsService) Batches(ctx context.Context) ([]model.BatchPerformance, error) {
	return s.finance.BatchAnalytics(ctx)
}

func (s *AnalyticsService) CropAnalytics(ctx context.Context) (model.CropAnalytics, error) {
	crops, err := s.reports.CropTypeCounts(ctx)
	if err != nil {
		return model.CropAnalytics{}, err
	}

	issues, err := s.reports.MedicalIssuesByDay(ctx)
	if err != nil {
		return model.CropAnalytics{}, err
	}

	harvests, err := s.reports.HarvestTotalsByCrop(ctx)
	if err != nil {
		return model.CropAnalytics{}, err
	}

	return model.CropAnalytics{Crops: crops, MedicalRecords: issues, HarvestRecords: harvests}, nil
}

// Dashboard is the landing-page rollup over the last twelve months.
func (s *AnalyticsService) Dashboard(ctx context.Context) (model.Dashboard, error) {
	now := s.now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)

	harvest, err := s.reports.MonthlyHarvest(ctx, since)
	if err != nil {
		return model.Dashboard{}, err
	}

	finance, err := s.reports.MonthlyFinance(ctx, since)
	if err != nil {
		return model.Dashboard{}, err
	}

	dashboard := model.Dashboard{
		CropYield:     make([]model.YieldPoint, 0, len(harvest)),
		FinancialData: make([]model.FinancialPoint, 0, len(finance)),
	}

	var yieldTotal float64
	for _, m := range harvest {
		dashboard.CropYield = append(dashboard.CropYield, model.YieldPoint{
			Month: m.Month.Format("Jan"),
			Yield: m.Total,
		})
		yieldTotal += m.Total
	}

	for _, m := range finance {
		dashboard.FinancialData = append(dashboard.FinancialData, model.FinancialPoint{
			Month:    m.Month.Format("Jan"),
			Revenue:  m.Revenue,
			Expenses: m.Expenses,
		})
		dashboard.Stats.TotalRevenue += m.Revenue
		dashboard.Stats.TotalExpenses += m.Expenses
	}

	dashboard.Stats.NetProfit = dashboard.Stats.TotalRevenue - dashboard.Stats.TotalExpenses
	if len(harvest) > 0 {
		dashboard.Stats.AverageYield = round1(yieldTotal / float64(len(harvest)))
	}

	return dashboard, nil
}

// periodRange resolves the summary window. Defaults to the current month;
// "yearly" widens it to the calendar year.
func (s *AnalyticsService) periodRange(timeFilter string, yearStr string, monthStr string) (time.Time, time.Time) {
	now := s.now().UTC()

	year := now.Year()
	if parsed, err := strconv.Atoi(yearStr); err == nil {
		year = parsed
	}

	if timeFilter == "yearly" {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	}

	month := int(now.Month()) - 1
	if parsed, err := strconv.Atoi(monthStr); err == nil {
		month = parsed
	}

	start := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

func growth(current float64, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
