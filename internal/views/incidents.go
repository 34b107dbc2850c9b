package views

import (
	"sort"
	"strings"
	"time"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/domain/incident"
	"github.com/dentware/clinicdesk/internal/domain/patient"
)

// StatusFilterAll short-circuits the status predicate.
const StatusFilterAll = "all"

// NextVisitInterval is the suggested gap between a treatment and the
// follow-up checkup.
const NextVisitInterval = 6 // months

// DefaultNextDate suggests a follow-up date six months from now. Month
// overflow normalizes forward the way time.AddDate does.
func DefaultNextDate(now time.Time) domain.Date {
	next := now.AddDate(0, NextVisitInterval, 0)
	return domain.NewDate(next.Year(), next.Month(), next.Day())
}

// FilterIncidents keeps incidents whose linked patient name, title or
// description contains the query, case-insensitively, and whose stored
// status matches statusFilter. The admin edits the stored status, so this
// filter deliberately matches against it rather than the effective one.
func FilterIncidents(incidents []incident.Incident, patients []patient.Patient, query, statusFilter string) []incident.Incident {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []incident.Incident
	for _, inc := range incidents {
		if statusFilter != StatusFilterAll && statusFilter != "" && string(inc.Status) != statusFilter {
			continue
		}
		if query != "" && !incidentMatches(inc, patients, query) {
			continue
		}
		out = append(out, inc)
	}
	return out
}

func incidentMatches(inc incident.Incident, patients []patient.Patient, query string) bool {
	name := PatientName(patients, inc.PatientID)
	return strings.Contains(strings.ToLower(name), query) ||
		strings.Contains(strings.ToLower(inc.Title), query) ||
		strings.Contains(strings.ToLower(inc.Description), query)
}

// SortIncidentsByDate returns a copy sorted by appointment date, newest
// first when desc is true.
func SortIncidentsByDate(incidents []incident.Incident, desc bool) []incident.Incident {
	out := make([]incident.Incident, len(incidents))
	copy(out, incidents)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].AppointmentDate.After(out[j].AppointmentDate.Time)
		}
		return out[i].AppointmentDate.Before(out[j].AppointmentDate.Time)
	})
	return out
}
