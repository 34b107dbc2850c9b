package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/domain/incident"
)

func TestRevenueSeries_WeekBucketsAndZeroFill(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	incidents := []incident.Incident{
		{Status: incident.StatusCompleted, Cost: 100, AppointmentDate: domain.NewDateTime(2026, time.March, 15, 9, 0)},
		{Status: incident.StatusCompleted, Cost: 50, AppointmentDate: domain.NewDateTime(2026, time.March, 13, 9, 0)},
		// Day with no completed work stays a zero bucket, not a gap.
	}

	buckets := RevenueSeries(incidents, RangeWeek, now)
	require.Len(t, buckets, 7)

	assert.Equal(t, "Mar 9", buckets[0].Label, "oldest day first")
	assert.Equal(t, "Mar 15", buckets[6].Label)
	assert.Equal(t, 100.0, buckets[6].Total)
	assert.Equal(t, 50.0, buckets[4].Total)
	assert.Equal(t, 0.0, buckets[0].Total)
}

func TestRevenueSeries_ExcludesCancelledAndFuture(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	incidents := []incident.Incident{
		{Status: incident.StatusCancelled, Cost: 500, AppointmentDate: domain.NewDateTime(2026, time.March, 14, 9, 0)},
		// Future Pending is not effectively completed, so no revenue.
		{Status: incident.StatusPending, Cost: 300, AppointmentDate: domain.NewDateTime(2026, time.March, 15, 18, 0)},
	}

	buckets := RevenueSeries(incidents, RangeWeek, now)
	for _, b := range buckets {
		assert.Equal(t, 0.0, b.Total, "bucket %s", b.Label)
	}
}

func TestRevenueSeries_CountsEffectivelyCompleted(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	// Past-due Pending is promoted to Completed for display, and that
	// promotion carries into the revenue series.
	incidents := []incident.Incident{
		{Status: incident.StatusPending, Cost: 50, AppointmentDate: domain.NewDateTime(2026, time.March, 14, 9, 0)},
	}

	buckets := RevenueSeries(incidents, RangeWeek, now)
	assert.Equal(t, 50.0, buckets[5].Total)
}

func TestRevenueSeries_MonthIsFourWeeklyWindows(t *testing.T) {
	now := time.Date(2026, time.March, 28, 12, 0, 0, 0, time.Local)
	incidents := []incident.Incident{
		{Status: incident.StatusCompleted, Cost: 10, AppointmentDate: domain.NewDateTime(2026, time.March, 28, 9, 0)},
		{Status: incident.StatusCompleted, Cost: 20, AppointmentDate: domain.NewDateTime(2026, time.March, 8, 9, 0)},
	}

	buckets := RevenueSeries(incidents, RangeMonth, now)
	require.Len(t, buckets, 4)
	assert.Equal(t, 20.0, buckets[0].Total, "oldest window")
	assert.Equal(t, 10.0, buckets[3].Total, "current window")
}

func TestRevenueSeries_YearBucketsCurrentYearOnly(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.Local)
	incidents := []incident.Incident{
		{Status: incident.StatusCompleted, Cost: 75, AppointmentDate: domain.NewDateTime(2026, time.February, 10, 9, 0)},
		{Status: incident.StatusCompleted, Cost: 999, AppointmentDate: domain.NewDateTime(2025, time.February, 10, 9, 0)},
	}

	buckets := RevenueSeries(incidents, RangeYear, now)
	require.Len(t, buckets, 12)
	assert.Equal(t, "Jan", buckets[0].Label)
	assert.Equal(t, "Dec", buckets[11].Label)
	assert.Equal(t, 75.0, buckets[1].Total)
	total := 0.0
	for _, b := range buckets {
		total += b.Total
	}
	assert.Equal(t, 75.0, total, "prior-year revenue excluded")
}

func TestRevenueByMonth_FullMonthNames(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.Local)
	buckets := RevenueByMonth(nil, now)
	require.Len(t, buckets, 12)
	assert.Equal(t, "January", buckets[0].Label)
	assert.Equal(t, "December", buckets[11].Label)
}

func TestTotalRevenue(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	incidents := []incident.Incident{
		{Status: incident.StatusCompleted, Cost: 100, AppointmentDate: domain.NewDateTime(2024, time.January, 1, 9, 0)},
		{Status: incident.StatusCancelled, Cost: 40, AppointmentDate: domain.NewDateTime(2024, time.January, 1, 9, 0)},
		{Status: incident.StatusPending, Cost: 60, AppointmentDate: domain.NewDateTime(2024, time.January, 1, 9, 0)},
	}

	// 100 stored Completed + 60 past-due Pending promoted.
	assert.Equal(t, 160.0, TotalRevenue(incidents, now))
}
