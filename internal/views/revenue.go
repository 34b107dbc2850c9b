package views

import (
	"time"

	"github.com/dentware/clinicdesk/internal/domain/incident"
)

type RevenueRange string

const (
	// RangeWeek buckets the last 7 calendar days, one bucket per day.
	RangeWeek RevenueRange = "week"
	// RangeMonth buckets the last 4 weeks, one bucket per 7-day window.
	RangeMonth RevenueRange = "month"
	// RangeYear buckets the 12 calendar months of the current year.
	RangeYear RevenueRange = "year"
)

func (r RevenueRange) IsValid() bool {
	switch r {
	case RangeWeek, RangeMonth, RangeYear:
		return true
	}
	return false
}

type RevenueBucket struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// RevenueSeries sums cost over incidents whose effective status is
// Completed, bucketed by the requested range ending at now. Empty buckets
// report a zero total, never drop out of the series.
func RevenueSeries(incidents []incident.Incident, r RevenueRange, now time.Time) []RevenueBucket {
	switch r {
	case RangeMonth:
		return weeklyRevenue(incidents, now)
	case RangeYear:
		return monthlyRevenue(incidents, now)
	default:
		return dailyRevenue(incidents, now)
	}
}

func dailyRevenue(incidents []incident.Incident, now time.Time) []RevenueBucket {
	buckets := make([]RevenueBucket, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		total := 0.0
		for _, inc := range incidents {
			if EffectiveStatus(inc, now) != incident.StatusCompleted {
				continue
			}
			if sameDay(inc.AppointmentDate.Time, day) {
				total += inc.Cost
			}
		}
		buckets = append(buckets, RevenueBucket{Label: day.Format("Jan 2"), Total: total})
	}
	return buckets
}

func weeklyRevenue(incidents []incident.Incident, now time.Time) []RevenueBucket {
	buckets := make([]RevenueBucket, 0, 4)
	// The newest window starts at today and runs six days forward, so the
	// last bucket deliberately covers dates after now.
	for i := 3; i >= 0; i-- {
		start := startOfDay(now.AddDate(0, 0, -7*i))
		end := start.AddDate(0, 0, 7) // exclusive
		last := start.AddDate(0, 0, 6)
		total := 0.0
		for _, inc := range incidents {
			if EffectiveStatus(inc, now) != incident.StatusCompleted {
				continue
			}
			d := inc.AppointmentDate.Time
			if !d.Before(start) && d.Before(end) {
				total += inc.Cost
			}
		}
		label := start.Format("Jan 2") + " - " + last.Format("Jan 2")
		buckets = append(buckets, RevenueBucket{Label: label, Total: total})
	}
	return buckets
}

func monthlyRevenue(incidents []incident.Incident, now time.Time) []RevenueBucket {
	year := now.Year()
	buckets := make([]RevenueBucket, 0, 12)
	for m := time.January; m <= time.December; m++ {
		total := 0.0
		for _, inc := range incidents {
			if EffectiveStatus(inc, now) != incident.StatusCompleted {
				continue
			}
			d := inc.AppointmentDate.Time
			if d.Year() == year && d.Month() == m {
				total += inc.Cost
			}
		}
		buckets = append(buckets, RevenueBucket{
			Label: time.Date(year, m, 1, 0, 0, 0, 0, time.Local).Format("Jan"),
			Total: total,
		})
	}
	return buckets
}

// RevenueByMonth is the monthly table on the dashboard: full month names,
// current year.
func RevenueByMonth(incidents []incident.Incident, now time.Time) []RevenueBucket {
	buckets := monthlyRevenue(incidents, now)
	for i := range buckets {
		buckets[i].Label = time.Date(now.Year(), time.Month(i+1), 1, 0, 0, 0, 0, time.Local).Format("January")
	}
	return buckets
}

// TotalRevenue sums cost over every effectively Completed incident.
func TotalRevenue(incidents []incident.Incident, now time.Time) float64 {
	total := 0.0
	for _, inc := range incidents {
		if EffectiveStatus(inc, now) == incident.StatusCompleted {
			total += inc.Cost
		}
	}
	return total
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
