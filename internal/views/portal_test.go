package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/domain/incident"
)

func portalFixture() []incident.Incident {
	return []incident.Incident{
		{ID: "past-done", PatientID: "p1", Title: "Cleaning", Status: incident.StatusCompleted, Cost: 60,
			AppointmentDate: domain.NewDateTime(2026, time.January, 10, 9, 0)},
		{ID: "past-pending", PatientID: "p1", Title: "Filling", Description: "composite", Status: incident.StatusPending, Cost: 120,
			AppointmentDate: domain.NewDateTime(2026, time.February, 10, 9, 0)},
		{ID: "future", PatientID: "p1", Title: "Checkup", Status: incident.StatusPending, Cost: 40,
			AppointmentDate: domain.NewDateTime(2026, time.April, 10, 9, 0)},
		{ID: "other-patient", PatientID: "p2", Title: "Cleaning", Status: incident.StatusPending, Cost: 60,
			AppointmentDate: domain.NewDateTime(2026, time.April, 12, 9, 0)},
	}
}

func TestPatientUpcoming_OwnFutureOnly(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	up := PatientUpcoming(portalFixture(), "p1", now)
	require.Len(t, up, 1)
	assert.Equal(t, "future", up[0].ID)
}

func TestPatientHistory_PastOnlyNewestFirst(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	hist := PatientHistory(portalFixture(), "p1", "", "all", HistoryByDate, now)
	require.Len(t, hist, 2)
	assert.Equal(t, "past-pending", hist[0].ID)
	assert.Equal(t, "past-done", hist[1].ID)
}

func TestPatientHistory_SearchAndStatusFilter(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)

	byQuery := PatientHistory(portalFixture(), "p1", "composite", "all", HistoryByDate, now)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "past-pending", byQuery[0].ID)

	// The filter matches the effective status, so the past-due Pending
	// filling shows up under Completed.
	byStatus := PatientHistory(portalFixture(), "p1", "", string(incident.StatusCompleted), HistoryByDate, now)
	assert.Len(t, byStatus, 2)
}

func TestPatientHistory_SortByCost(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	hist := PatientHistory(portalFixture(), "p1", "", "all", HistoryByCost, now)
	require.Len(t, hist, 2)
	assert.Equal(t, 120.0, hist[0].Cost, "most expensive first")
}

func TestPatientPortalTotals(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	totals := PatientPortalTotals(portalFixture(), "p1", now)

	assert.Equal(t, 3, totals.Visits)
	assert.Equal(t, 2, totals.Completed, "stored Completed plus promoted past-due")
	assert.Equal(t, 180.0, totals.TotalSpent)
	assert.Equal(t, 40.0, totals.UpcomingCost)
}
