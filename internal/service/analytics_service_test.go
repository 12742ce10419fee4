package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAnalyticsPeriodRange(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.July, 15, 10, 30, 0, 0, time.UTC)
	svc := &AnalyticsService{now: func() time.Time { return now }}

	t.Run("defaults to the current month", func(t *testing.T) {
		start, end := svc.periodRange("", "", "")
		require.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), start)
		require.Equal(t, time.August, end.Month())
		require.True(t, end.Before(time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("month parameter is zero-based", func(t *testing.T) {
		start, _ := svc.periodRange("", "2025", "0")
		require.Equal(t, time.January, start.Month())

		start, _ = svc.periodRange("", "2025", "11")
		require.Equal(t, time.December, start.Month())
	})

	t.Run("yearly covers the calendar year", func(t *testing.T) {
		start, end := svc.periodRange("yearly", "2024", "")
		require.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), start)
		require.Equal(t, 2024, end.Year())
		require.Equal(t, time.December, end.Month())
	})
}

func TestGrowth(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0.0, growth(100, 0))
	require.Equal(t, 100.0, growth(200, 100))
	require.Equal(t, -50.0, growth(50, 100))
	require.InDelta(t, 33.333, growth(400, 300), 0.001)
}

func TestRound1(t *testing.T) {
	t.Parallel()

	require.Equal(t, 33.3, round1(33.333))
	require.Equal(t, 12.5, round1(12.45))
	require.Equal(t, -7.1, round1(-7.06))
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	plain, err := parseDate("2025-03-10")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), plain)

	rfc, err := parseDate("2025-03-10T12:30:00Z")
	require.NoError(t, err)
	require.Equal(t, 12, rfc.Hour())

	_, err = parseDate("10/03/2025")
	require.Error(t, err)
}
