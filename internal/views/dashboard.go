package views

import (
	"time"

	"github.com/dentware/clinicdesk/internal/domain/incident"
	"github.com/dentware/clinicdesk/internal/domain/patient"
)

// Summary is the dashboard's KPI strip.
type Summary struct {
	Patients     int     `json:"patients"`
	Upcoming     int     `json:"upcoming"`
	Completed    int     `json:"completed"`
	TotalRevenue float64 `json:"totalRevenue"`
}

func DashboardSummary(patients []patient.Patient, incidents []incident.Incident, now time.Time) Summary {
	s := Summary{Patients: len(patients)}
	for _, inc := range incidents {
		if !inc.AppointmentDate.Before(now) {
			s.Upcoming++
		}
		if EffectiveStatus(inc, now) == incident.StatusCompleted {
			s.Completed++
			s.TotalRevenue += inc.Cost
		}
	}
	return s
}

// NextAppointments lists future appointments, soonest first, capped at
// limit (0 means no cap).
func NextAppointments(incidents []incident.Incident, now time.Time, limit int) []incident.Incident {
	var future []incident.Incident
	for _, inc := range incidents {
		if !inc.AppointmentDate.Before(now) {
			future = append(future, inc)
		}
	}
	future = SortIncidentsByDate(future, false)
	if limit > 0 && len(future) > limit {
		future = future[:limit]
	}
	return future
}

// TodaysAppointments lists appointments on now's calendar day, in time
// order.
func TodaysAppointments(incidents []incident.Incident, now time.Time) []incident.Incident {
	var today []incident.Incident
	for _, inc := range incidents {
		if sameDay(inc.AppointmentDate.Time, now) {
			today = append(today, inc)
		}
	}
	return SortIncidentsByDate(today, false)
}

// UpcomingByMonth lists future appointments, optionally restricted to one
// month of the current year (nil month means all), soonest first.
func UpcomingByMonth(incidents []incident.Incident, month *time.Month, now time.Time) []incident.Incident {
	var out []incident.Incident
	for _, inc := range incidents {
		if inc.AppointmentDate.Before(now) {
			continue
		}
		if month != nil {
			d := inc.AppointmentDate.Time
			if d.Year() != now.Year() || d.Month() != *month {
				continue
			}
		}
		out = append(out, inc)
	}
	return SortIncidentsByDate(out, false)
}

// CompletedByMonth lists effectively completed appointments, optionally
// restricted to one month of the current year, newest first.
func CompletedByMonth(incidents []incident.Incident, month *time.Month, now time.Time) []incident.Incident {
	var out []incident.Incident
	for _, inc := range incidents {
		if EffectiveStatus(inc, now) != incident.StatusCompleted {
			continue
		}
		if month != nil {
			d := inc.AppointmentDate.Time
			if d.Year() != now.Year() || d.Month() != *month {
				continue
			}
		}
		out = append(out, inc)
	}
	return SortIncidentsByDate(out, true)
}
