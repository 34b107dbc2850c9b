package views

import (
	"sort"
	"strings"
	"time"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/domain/incident"
	"github.com/dentware/clinicdesk/internal/domain/patient"
)

// UnknownPatientName is rendered for incidents whose patient reference
// dangles (the referenced patient no longer exists in the collection).
const UnknownPatientName = "Unknown Patient"

// Age is the conventional calendar age: years since dob, minus one when
// the birthday has not yet occurred in the asOf year.
func Age(dob domain.Date, asOf time.Time) int {
	years := asOf.Year() - dob.Year()
	if asOf.Month() < dob.Month() ||
		(asOf.Month() == dob.Month() && asOf.Day() < dob.Day()) {
		years--
	}
	return years
}

func VisitCount(patientID string, incidents []incident.Incident) int {
	n := 0
	for _, inc := range incidents {
		if inc.PatientID == patientID {
			n++
		}
	}
	return n
}

// LastVisit returns the latest appointment date among the patient's
// incidents; ok is false when the patient has none.
func LastVisit(patientID string, incidents []incident.Incident) (time.Time, bool) {
	var last time.Time
	found := false
	for _, inc := range incidents {
		if inc.PatientID != patientID {
			continue
		}
		if !found || inc.AppointmentDate.After(last) {
			last = inc.AppointmentDate.Time
			found = true
		}
	}
	return last, found
}

// PatientName resolves a patient id for display, tolerating dangling
// references.
func PatientName(patients []patient.Patient, id string) string {
	for _, p := range patients {
		if p.ID == id {
			return p.Name
		}
	}
	return UnknownPatientName
}

// FilterPatients keeps patients whose name, contact, health info or any
// tag contains the query, case-insensitively. An empty query keeps
// everything.
func FilterPatients(patients []patient.Patient, query string) []patient.Patient {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return patients
	}
	var out []patient.Patient
	for _, p := range patients {
		if patientMatches(p, query) {
			out = append(out, p)
		}
	}
	return out
}

func patientMatches(p patient.Patient, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Contact), query) ||
		strings.Contains(strings.ToLower(p.HealthInfo), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

type SortKey string

const (
	SortByName    SortKey = "name"
	SortByDOB     SortKey = "dob"
	SortByContact SortKey = "contact"
	SortByAge     SortKey = "age"
	SortByVisits  SortKey = "visits"
)

func (k SortKey) IsValid() bool {
	switch k {
	case SortByName, SortByDOB, SortByContact, SortByAge, SortByVisits:
		return true
	}
	return false
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortPatients returns a sorted copy. Age and visit counts are computed at
// sort time; the sort is stable so equal keys keep insertion order.
func SortPatients(patients []patient.Patient, key SortKey, dir Direction, incidents []incident.Incident, now time.Time) []patient.Patient {
	out := make([]patient.Patient, len(patients))
	copy(out, patients)

	less := func(a, b patient.Patient) int {
		switch key {
		case SortByDOB:
			return strings.Compare(a.DOB.String(), b.DOB.String())
		case SortByContact:
			return strings.Compare(a.Contact, b.Contact)
		case SortByAge:
			return Age(a.DOB, now) - Age(b.DOB, now)
		case SortByVisits:
			return VisitCount(a.ID, incidents) - VisitCount(b.ID, incidents)
		default:
			return strings.Compare(a.Name, b.Name)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		cmp := less(out[i], out[j])
		if dir == Desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}
