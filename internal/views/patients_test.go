package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/domain/incident"
	"github.com/dentware/clinicdesk/internal/domain/patient"
)

func TestAge_BirthdayBoundary(t *testing.T) {
	dob := domain.NewDate(2000, time.March, 2)

	dayBefore := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	assert.Equal(t, 23, Age(dob, dayBefore), "birthday not yet reached")

	onBirthday := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.Local)
	assert.Equal(t, 24, Age(dob, onBirthday), "birthday counts from the day itself")

	dayAfter := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.Local)
	assert.Equal(t, 24, Age(dob, dayAfter))
}

func TestFilterPatients_MatchesAllSearchFields(t *testing.T) {
	patients := []patient.Patient{
		{ID: "p1", Name: "Alice Smith", Contact: "555-0101", HealthInfo: "Diabetic"},
		{ID: "p2", Name: "Bob Jones", Contact: "555-0202", Tags: []string{"VIP", "orthodontics"}},
	}

	assert.Len(t, FilterPatients(patients, "alice"), 1, "name, case-insensitive")
	assert.Len(t, FilterPatients(patients, "0202"), 1, "contact")
	assert.Len(t, FilterPatients(patients, "diabet"), 1, "health info")
	assert.Len(t, FilterPatients(patients, "vip"), 1, "tag")
	assert.Len(t, FilterPatients(patients, "zzz"), 0)
	assert.Len(t, FilterPatients(patients, ""), 2, "empty query keeps everything")
	assert.Len(t, FilterPatients(patients, "  "), 2, "whitespace-only query keeps everything")
}

func TestSortPatients_ByNameAndDirection(t *testing.T) {
	patients := []patient.Patient{
		{ID: "p1", Name: "Carol"},
		{ID: "p2", Name: "Alice"},
		{ID: "p3", Name: "Bob"},
	}
	now := time.Now()

	asc := SortPatients(patients, SortByName, Asc, nil, now)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, names(asc))

	desc := SortPatients(patients, SortByName, Desc, nil, now)
	assert.Equal(t, []string{"Carol", "Bob", "Alice"}, names(desc))

	// Input order untouched
	assert.Equal(t, "Carol", patients[0].Name)
}

func TestSortPatients_ByVisits(t *testing.T) {
	patients := []patient.Patient{
		{ID: "p1", Name: "One"},
		{ID: "p2", Name: "Two"},
	}
	incidents := []incident.Incident{
		{ID: "i1", PatientID: "p2"},
		{ID: "i2", PatientID: "p2"},
		{ID: "i3", PatientID: "p1"},
	}

	sorted := SortPatients(patients, SortByVisits, Desc, incidents, time.Now())
	assert.Equal(t, "p2", sorted[0].ID)
}

func TestSortPatients_StableOnTies(t *testing.T) {
	patients := []patient.Patient{
		{ID: "p1", Name: "Same"},
		{ID: "p2", Name: "Same"},
		{ID: "p3", Name: "Same"},
	}

	sorted := SortPatients(patients, SortByName, Asc, nil, time.Now())
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(sorted), "ties keep insertion order")
}

func TestLastVisit(t *testing.T) {
	incidents := []incident.Incident{
		{ID: "i1", PatientID: "p1", AppointmentDate: domain.NewDateTime(2025, time.January, 5, 10, 0)},
		{ID: "i2", PatientID: "p1", AppointmentDate: domain.NewDateTime(2025, time.June, 5, 10, 0)},
		{ID: "i3", PatientID: "p2", AppointmentDate: domain.NewDateTime(2025, time.December, 5, 10, 0)},
	}

	last, ok := LastVisit("p1", incidents)
	assert.True(t, ok)
	assert.Equal(t, time.June, last.Month())

	_, ok = LastVisit("p9", incidents)
	assert.False(t, ok)
}

func TestPatientName_DanglingReference(t *testing.T) {
	patients := []patient.Patient{{ID: "p1", Name: "Alice"}}

	assert.Equal(t, "Alice", PatientName(patients, "p1"))
	assert.Equal(t, UnknownPatientName, PatientName(patients, "deleted"))
}

func names(ps []patient.Patient) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func ids(ps []patient.Patient) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}
