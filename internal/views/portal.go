package views

import (
	"sort"
	"strings"
	"time"

	"github.com/dentware/clinicdesk/internal/domain/incident"
)

// PatientUpcoming lists a patient's future, not-yet-completed
// appointments, soonest first.
func PatientUpcoming(incidents []incident.Incident, patientID string, now time.Time) []incident.Incident {
	var out []incident.Incident
	for _, inc := range incidents {
		if inc.PatientID != patientID {
			continue
		}
		if inc.AppointmentDate.Before(now) {
			continue
		}
		if EffectiveStatus(inc, now) == incident.StatusCompleted {
			continue
		}
		out = append(out, inc)
	}
	return SortIncidentsByDate(out, false)
}

// HistorySort selects the order of a patient's visit history.
type HistorySort string

const (
	HistoryByDate HistorySort = "date" // newest first
	HistoryByCost HistorySort = "cost" // most expensive first
)

// PatientHistory lists a patient's past appointments, filtered by a
// case-insensitive search over title and description and by effective
// status, sorted by date or cost.
func PatientHistory(incidents []incident.Incident, patientID, query, statusFilter string, sortBy HistorySort, now time.Time) []incident.Incident {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []incident.Incident
	for _, inc := range incidents {
		if inc.PatientID != patientID {
			continue
		}
		if !inc.AppointmentDate.Before(now) {
			continue
		}
		if statusFilter != StatusFilterAll && statusFilter != "" &&
			string(EffectiveStatus(inc, now)) != statusFilter {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(inc.Title), query) &&
			!strings.Contains(strings.ToLower(inc.Description), query) {
			continue
		}
		out = append(out, inc)
	}

	if sortBy == HistoryByCost {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Cost > out[j].Cost })
		return out
	}
	return SortIncidentsByDate(out, true)
}

// PatientTotals is the stat strip on the patient portal.
type PatientTotals struct {
	Visits       int     `json:"visits"`
	Completed    int     `json:"completed"`
	TotalSpent   float64 `json:"totalSpent"`
	UpcomingCost float64 `json:"upcomingCost"`
}

func PatientPortalTotals(incidents []incident.Incident, patientID string, now time.Time) PatientTotals {
	var t PatientTotals
	for _, inc := range incidents {
		if inc.PatientID != patientID {
			continue
		}
		t.Visits++
		if EffectiveStatus(inc, now) == incident.StatusCompleted {
			t.Completed++
			t.TotalSpent += inc.Cost
		} else if !inc.AppointmentDate.Before(now) {
			t.UpcomingCost += inc.Cost
		}
	}
	return t
}
