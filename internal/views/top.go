package views

import (
	"sort"

	"github.com/dentware/clinicdesk/internal/domain/incident"
	"github.com/dentware/clinicdesk/internal/domain/patient"
)

// DefaultTopN is how many entries the dashboard's "top" cards show.
const DefaultTopN = 3

// TopN sorts items by count descending and returns the first n. The sort
// is stable: ties keep their original (insertion) order, which keeps the
// cards deterministic.
func TopN[T any](items []T, count func(T) int, n int) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return count(out[i]) > count(out[j])
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

type PatientVisits struct {
	Patient patient.Patient `json:"patient"`
	Visits  int             `json:"visits"`
}

// TopPatients ranks patients by visit count.
func TopPatients(patients []patient.Patient, incidents []incident.Incident, n int) []PatientVisits {
	ranked := make([]PatientVisits, 0, len(patients))
	for _, p := range patients {
		ranked = append(ranked, PatientVisits{Patient: p, Visits: VisitCount(p.ID, incidents)})
	}
	return TopN(ranked, func(pv PatientVisits) int { return pv.Visits }, n)
}

type ServiceCount struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// TopServices ranks treatment titles by how often they appear, first
// appearance order breaking ties.
func TopServices(incidents []incident.Incident, n int) []ServiceCount {
	counts := make(map[string]int)
	var order []string
	for _, inc := range incidents {
		if _, seen := counts[inc.Title]; !seen {
			order = append(order, inc.Title)
		}
		counts[inc.Title]++
	}
	ranked := make([]ServiceCount, 0, len(order))
	for _, title := range order {
		ranked = append(ranked, ServiceCount{Title: title, Count: counts[title]})
	}
	return TopN(ranked, func(sc ServiceCount) int { return sc.Count }, n)
}
