package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"farmstead/internal/model"
)

// ReportRepository backs the crop-analytics and dashboard reports.
type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

func (r *ReportRepository) CropTypeCounts(ctx context.Context) ([]model.CropTypeCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT crop_type, COUNT(*)
		FROM crops
		GROUP BY crop_type
		ORDER BY crop_type
	`)
	if err != nil {
		return nil, fmt.Errorf("crop type counts: %w", err)
	}
	defer rows.Close()

	counts := make([]model.CropTypeCount, 0)
	for rows.Next() {
		var c model.CropTypeCount
		if err := rows.Scan(&c.CropType, &c.Count); err != nil {
			return nil, fmt.Errorf("scan crop count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *ReportRepository) MedicalIssuesByDay(ctx context.Context) ([]model.DailyIssueCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(record_date, 'YYYY-MM-DD'), COUNT(*)
		FROM medical_records
		GROUP BY 1
		ORDER BY 1
	`)
	if err != nil {
		return nil, fmt.Errorf("medical issues by day: %w", err)
	}
	defer rows.Close()

	issues := make([]model.DailyIssueCount, 0)
	for rows.Next() {
		var d model.DailyIssueCount
		if err := rows.Scan(&d.Date, &d.IssueCount); err != nil {
			return nil, fmt.Errorf("scan issue count: %w", err)
		}
		issues = append(issues, d)
	}
	return issues, rows.Err()
}

func (r *ReportRepository) HarvestTotalsByCrop(ctx context.Context) ([]model.CropTypeQuantity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT crop_type, COALESCE(SUM(quantity), 0)
		FROM harvesting_records
		GROUP BY crop_type
		ORDER BY crop_type
	`)
	if err != nil {
		return nil, fmt.Errorf("harvest totals: %w", err)
	}
	defer rows.Close()

	totals := make([]model.CropTypeQuantity, 0)
	for rows.Next() {
		var q model.CropTypeQuantity
		if err := rows.Scan(&q.CropType, &q.Quantity); err != nil {
			return nil, fmt.Errorf("scan harvest total: %w", err)
		}
		totals = append(totals, q)
	}
	return totals, rows.Err()
}

// MonthlyHarvest returns per-month harvest quantity since the given time.
func (r *ReportRepository) MonthlyHarvest(ctx context.Context, since time.Time) ([]MonthTotal, error) {
	return r.monthTotals(ctx, `
		SELECT date_trunc('month', harvested_date), COALESCE(SUM(quantity), 0)
		FROM harvesting_records
		WHERE harvested_date >= $1
		GROUP BY 1
		ORDER BY 1
	`, since)
}

// MonthlyFinance returns per-month revenue and expense totals since the given
// time.
func (r *ReportRepository) MonthlyFinance(ctx context.Context, since time.Time) ([]MonthFinance, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			date_trunc('month', record_date),
			COALESCE(SUM(CASE WHEN type = 'income' THEN units * cost_per_unit ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN units * cost_per_unit ELSE 0 END), 0)
		FROM transactions
		WHERE record_date >= $1
		GROUP BY 1
		ORDER BY 1
	`, since)
	if err != nil {
		return nil, fmt.Errorf("monthly finance: %w", err)
	}
	defer rows.Close()

	months := make([]MonthFinance, 0)
	for rows.Next() {
		var m MonthFinance
		if err := rows.Scan(&m.Month, &m.Revenue, &m.Expenses); err != nil {
			return nil, fmt.Errorf("scan monthly finance: %w", err)
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

type MonthTotal struct {
	Month time.Time
	Total float64
}

type MonthFinance struct {
	Month    time.Time
	Revenue  float64
	Expenses float64
}

func (r *ReportRepository) monthTotals(ctx context.Context, query string, since time.Time) ([]MonthTotal, error) {
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("month totals: %w", err)
	}
	defer rows.Close()

	months := make([]MonthTotal, 0)
	for rows.Next() {
		var m MonthTotal
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			return nil, fmt.Errorf("scan month total: %w", err)
		}
		months = append(months, m)
	}
	return months, rows.Err()
}
