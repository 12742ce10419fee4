package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"farmstead/internal/model"
)

// FinanceRepository runs the read-only reporting queries over the
// transactions ledger. Every amount is units * cost_per_unit; totals are
// computed in SQL so the handlers stay idempotent report generators.
type FinanceRepository struct {
	pool *pgxpool.Pool
}

func NewFinanceRepository(pool *pgxpool.Pool) *FinanceRepository {
	return &FinanceRepository{pool: pool}
}

// PeriodTotals sums income and expenses between start and end inclusive.
func (r *FinanceRepository) PeriodTotals(ctx context.Context, start time.Time, end time.Time) (income float64, expenses float64, count int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN units * cost_per_unit ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN units * cost_per_unit ELSE 0 END), 0),
			COUNT(*)
		FROM transactions
		WHERE record_date >= $1 AND record_date <= $2
	`, start, end).Scan(&income, &expenses, &count)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("period totals: %w", err)
	}
	return income, expenses, count, nil
}

// MonthlySeries returns per-month income/expense totals between start and end,
// keyed "YYYY-M" to match the charting clients.
func (r *FinanceRepository) MonthlySeries(ctx context.Context, start time.Time, end time.Time) ([]model.MonthlyPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			EXTRACT(YEAR FROM record_date)::int,
			EXTRACT(MONTH FROM record_date)::int,
			COALESCE(SUM(CASE WHEN type = 'income' THEN units * cost_per_unit ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN units * cost_per_unit ELSE 0 END), 0)
		FROM transactions
		WHERE record_date >= $1 AND record_date <= $2
		GROUP BY 1, 2
		ORDER BY 1, 2
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("monthly series: %w", err)
	}
	defer rows.Close()

	points := make([]model.MonthlyPoint, 0)
	for rows.Next() {
		var (
			year, month int
			p           model.MonthlyPoint
		)
		if err := rows.Scan(&year, &month, &p.Income, &p.Expenses); err != nil {
			return nil, fmt.Errorf("scan monthly point: %w", err)
		}
		p.Date = fmt.Sprintf("%d-%d", year, month)
		p.Profit = p.Income - p.Expenses
		points = append(points, p)
	}
	return points, rows.Err()
}

// CategoryTotals aggregates by category within the range; txType narrows to
// one transaction type when non-empty.
func (r *FinanceRepository) CategoryTotals(ctx context.Context, start time.Time, end time.Time, txType string) ([]model.CategoryTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			category,
			COALESCE(SUM(units * cost_per_unit), 0),
			COUNT(*),
			COALESCE(AVG(units * cost_per_unit), 0)
		FROM transactions
		WHERE record_date >= $1 AND record_date <= $2
		  AND ($3 = '' OR type = $3)
		GROUP BY category
		ORDER BY 2 DESC
	`, start, end, txType)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	totals := make([]model.CategoryTotal, 0)
	for rows.Next() {
		var t model.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total, &t.Count, &t.AveragePerTransaction); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// MonthlyTrends returns income/expense totals per calendar month of a year.
// Months without transactions are absent; the service fills zeros.
func (r *FinanceRepository) MonthlyTrends(ctx context.Context, year int) ([]model.MonthlyPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			EXTRACT(MONTH FROM record_date)::int,
			COALESCE(SUM(CASE WHEN type = 'income' THEN units * cost_per_unit ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN units * cost_per_unit ELSE 0 END), 0)
		FROM transactions
		WHERE EXTRACT(YEAR FROM record_date)::int = $1
		GROUP BY 1
		ORDER BY 1
	`, year)
	if err != nil {
		return nil, fmt.Errorf("monthly trends: %w", err)
	}
	defer rows.Close()

	points := make([]model.MonthlyPoint, 0, 12)
	for rows.Next() {
		var p model.MonthlyPoint
		if err := rows.Scan(&p.Month, &p.Income, &p.Expenses); err != nil {
			return nil, fmt.Errorf("scan monthly trend: %w", err)
		}
		p.Profit = p.Income - p.Expenses
		points = append(points, p)
	}
	return points, rows.Err()
}

// BatchAnalytics aggregates income, expenses and units per batch, most
// profitable first.
func (r *FinanceRepository) BatchAnalytics(ctx context.Context) ([]model.BatchPerformance, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			batch,
			COALESCE(SUM(CASE WHEN type = 'income' THEN units * cost_per_unit ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN units * cost_per_unit ELSE 0 END), 0) AS expenses,
			COALESCE(SUM(units), 0) AS total_units
		FROM transactions
		GROUP BY batch
		ORDER BY income - expenses DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("batch analytics: %w", err)
	}
	defer rows.Close()

	batches := make([]model.BatchPerformance, 0)
	for rows.Next() {
		var b model.BatchPerformance
		if err := rows.Scan(&b.Batch, &b.Income, &b.Expenses, &b.TotalUnits); err != nil {
			return nil, fmt.Errorf("scan batch performance: %w", err)
		}
		b.Profit = b.Income - b.Expenses
		if b.TotalUnits > 0 {
			b.ProfitPerUnit = b.Profit / b.TotalUnits
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}
