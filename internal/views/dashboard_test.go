package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/domain/incident"
	"github.com/dentware/clinicdesk/internal/domain/patient"
)

func TestDashboardSummary(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	patients := []patient.Patient{{ID: "p1"}, {ID: "p2"}}
	incidents := []incident.Incident{
		{Status: incident.StatusCompleted, Cost: 100, AppointmentDate: domain.NewDateTime(2026, time.January, 5, 9, 0)},
		{Status: incident.StatusPending, Cost: 50, AppointmentDate: domain.NewDateTime(2026, time.March, 10, 9, 0)}, // past due, promoted
		{Status: incident.StatusPending, Cost: 70, AppointmentDate: domain.NewDateTime(2026, time.April, 1, 9, 0)},  // upcoming
		{Status: incident.StatusCancelled, Cost: 30, AppointmentDate: domain.NewDateTime(2026, time.February, 1, 9, 0)},
	}

	s := DashboardSummary(patients, incidents, now)
	assert.Equal(t, 2, s.Patients)
	assert.Equal(t, 1, s.Upcoming)
	assert.Equal(t, 2, s.Completed, "stored plus promoted")
	assert.Equal(t, 150.0, s.TotalRevenue)
}

func TestNextAppointments_SoonestFirstAndCapped(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	incidents := []incident.Incident{
		{ID: "late", AppointmentDate: domain.NewDateTime(2026, time.May, 1, 9, 0)},
		{ID: "past", AppointmentDate: domain.NewDateTime(2026, time.January, 1, 9, 0)},
		{ID: "soon", AppointmentDate: domain.NewDateTime(2026, time.March, 20, 9, 0)},
		{ID: "mid", AppointmentDate: domain.NewDateTime(2026, time.April, 1, 9, 0)},
	}

	next := NextAppointments(incidents, now, 2)
	require.Len(t, next, 2)
	assert.Equal(t, "soon", next[0].ID)
	assert.Equal(t, "mid", next[1].ID)

	all := NextAppointments(incidents, now, 0)
	assert.Len(t, all, 3, "zero limit means no cap")
}

func TestTodaysAppointments(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	incidents := []incident.Incident{
		{ID: "am", AppointmentDate: domain.NewDateTime(2026, time.March, 15, 9, 0)},
		{ID: "pm", AppointmentDate: domain.NewDateTime(2026, time.March, 15, 16, 0)},
		{ID: "tomorrow", AppointmentDate: domain.NewDateTime(2026, time.March, 16, 9, 0)},
	}

	today := TodaysAppointments(incidents, now)
	require.Len(t, today, 2)
	assert.Equal(t, "am", today[0].ID, "time order within the day")
	assert.Equal(t, "pm", today[1].ID)
}

func TestUpcomingAndCompletedByMonth(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	incidents := []incident.Incident{
		{ID: "apr", Status: incident.StatusPending, AppointmentDate: domain.NewDateTime(2026, time.April, 3, 9, 0)},
		{ID: "may", Status: incident.StatusPending, AppointmentDate: domain.NewDateTime(2026, time.May, 3, 9, 0)},
		{ID: "done", Status: incident.StatusCompleted, AppointmentDate: domain.NewDateTime(2026, time.February, 3, 9, 0)},
	}

	april := time.April
	up := UpcomingByMonth(incidents, &april, now)
	require.Len(t, up, 1)
	assert.Equal(t, "apr", up[0].ID)

	all := UpcomingByMonth(incidents, nil, now)
	assert.Len(t, all, 2)

	feb := time.February
	done := CompletedByMonth(incidents, &feb, now)
	require.Len(t, done, 1)
	assert.Equal(t, "done", done[0].ID)
}
