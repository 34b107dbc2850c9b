package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/domain/incident"
	"github.com/dentware/clinicdesk/internal/domain/patient"
	"github.com/dentware/clinicdesk/internal/store"
	"github.com/dentware/clinicdesk/internal/views"
)

func newIncidentFixture(t *testing.T) (*IncidentService, *store.DataStore) {
	t.Helper()
	log := zap.NewNop()
	st := store.Open(store.NewMemKV(), log, nil)
	auditSvc := NewAuditService(st, log, nil)
	t.Cleanup(auditSvc.Shutdown)
	return NewIncidentService(st, auditSvc, log), st
}

func TestCreateIncident_DefaultsFromCatalog(t *testing.T) {
	svc, _ := newIncidentFixture(t)

	inc, err := svc.CreateIncident(context.Background(), &incident.CreateCommand{
		PatientID:       "p1",
		Title:           "Dental Cleaning",
		AppointmentDate: domain.NewDateTime(2026, time.June, 1, 10, 0),
	}, testAdmin, "")
	require.NoError(t, err)

	assert.Equal(t, 60.0, inc.Cost, "nil cost defaults from the service catalog")
	assert.Equal(t, incident.StatusPending, inc.Status, "empty status defaults to Pending")
	assert.True(t, strings.HasPrefix(inc.ID, "i-"))
}

func TestCreateIncident_ExplicitCostWins(t *testing.T) {
	svc, _ := newIncidentFixture(t)

	cost := 45.0
	inc, err := svc.CreateIncident(context.Background(), &incident.CreateCommand{
		PatientID:       "p1",
		Title:           "Dental Cleaning",
		AppointmentDate: domain.NewDateTime(2026, time.June, 1, 10, 0),
		Cost:            &cost,
	}, testAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, 45.0, inc.Cost)

	zero := 0.0
	free, err := svc.CreateIncident(context.Background(), &incident.CreateCommand{
		PatientID:       "p1",
		Title:           "Dental Cleaning",
		AppointmentDate: domain.NewDateTime(2026, time.June, 1, 11, 0),
		Cost:            &zero,
	}, testAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, free.Cost, "explicit zero is not treated as absent")
}

func TestCreateIncident_UnknownTitleCostZero(t *testing.T) {
	svc, _ := newIncidentFixture(t)

	inc, err := svc.CreateIncident(context.Background(), &incident.CreateCommand{
		PatientID:       "p1",
		Title:           "Something Custom",
		AppointmentDate: domain.NewDateTime(2026, time.June, 1, 10, 0),
	}, testAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, inc.Cost)
}

func TestCreateIncident_Validation(t *testing.T) {
	svc, _ := newIncidentFixture(t)

	_, err := svc.CreateIncident(context.Background(), &incident.CreateCommand{
		PatientID:       "ghost",
		Title:           "Checkup",
		AppointmentDate: domain.NewDateTime(2026, time.June, 1, 10, 0),
	}, testAdmin, "")
	assert.ErrorIs(t, err, patient.ErrPatientNotFound, "incident must reference an existing patient")

	var verr *ValidationError
	_, err = svc.CreateIncident(context.Background(), &incident.CreateCommand{
		PatientID: "p1",
	}, testAdmin, "")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title is required")
	assert.Contains(t, verr.Fields, "appointmentDate is required")

	bad := -5.0
	_, err = svc.CreateIncident(context.Background(), &incident.CreateCommand{
		PatientID:       "p1",
		Title:           "Checkup",
		AppointmentDate: domain.NewDateTime(2026, time.June, 1, 10, 0),
		Cost:            &bad,
	}, testAdmin, "")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "cost cannot be negative")

	_, err = svc.CreateIncident(context.Background(), &incident.CreateCommand{
		PatientID:       "p1",
		Title:           "Checkup",
		AppointmentDate: domain.NewDateTime(2026, time.June, 1, 10, 0),
		Status:          "Rescheduled",
	}, testAdmin, "")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "status is invalid")
}

func TestUpdateIncident_LockedRefusesEdits(t *testing.T) {
	svc, _ := newIncidentFixture(t)

	locked := true
	_, err := svc.UpdateIncident(context.Background(), "i1", &incident.Patch{Locked: &locked}, testAdmin, "")
	require.NoError(t, err, "locking itself is allowed")

	title := "Renamed"
	_, err = svc.UpdateIncident(context.Background(), "i1", &incident.Patch{Title: &title}, testAdmin, "")
	assert.ErrorIs(t, err, incident.ErrIncidentLocked)

	// Unlocking alone is the one edit a locked record accepts.
	unlocked := false
	inc, err := svc.UpdateIncident(context.Background(), "i1", &incident.Patch{Locked: &unlocked}, testAdmin, "")
	require.NoError(t, err)
	assert.False(t, inc.Locked)

	_, err = svc.UpdateIncident(context.Background(), "i1", &incident.Patch{Title: &title}, testAdmin, "")
	assert.NoError(t, err, "edits resume once unlocked")
}

func TestAppendNote(t *testing.T) {
	svc, _ := newIncidentFixture(t)

	inc, err := svc.AppendNote(context.Background(), "i1", "follow-up booked", testAdmin, "")
	require.NoError(t, err)
	assert.Contains(t, inc.Notes, "follow-up booked")
	assert.True(t, strings.HasPrefix(inc.Notes, "["), "note entries carry a timestamp prefix")

	_, err = svc.AppendNote(context.Background(), "i1", "   ", testAdmin, "")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAttachFile_DataURI(t *testing.T) {
	svc, _ := newIncidentFixture(t)

	inc, err := svc.AttachFile(context.Background(), "i1", "xray2.png", "image/png", []byte{1, 2, 3}, testAdmin, "")
	require.NoError(t, err)

	last := inc.Files[len(inc.Files)-1]
	assert.Equal(t, "xray2.png", last.Name)
	assert.True(t, strings.HasPrefix(last.URL, "data:image/png;base64,"))
	assert.Equal(t, int64(3), last.Size)
}

func TestListIncidents_FilterByStoredStatus(t *testing.T) {
	svc, _ := newIncidentFixture(t)

	_, err := svc.CreateIncident(context.Background(), &incident.CreateCommand{
		PatientID:       "p1",
		Title:           "Checkup",
		AppointmentDate: domain.NewDateTime(2026, time.June, 1, 10, 0),
	}, testAdmin, "")
	require.NoError(t, err)

	all := svc.ListIncidents(&IncidentListQuery{StatusFilter: "all"})
	assert.Equal(t, 2, all.TotalCount)

	pending := svc.ListIncidents(&IncidentListQuery{StatusFilter: string(incident.StatusPending)})
	require.Len(t, pending.Incidents, 1)
	assert.Equal(t, "Checkup", pending.Incidents[0].Title)
	assert.Equal(t, "John Doe", pending.Incidents[0].PatientName)
}

// Walks the first-use flow end to end: seed data, a past-due appointment,
// the display-only status promotion and the revenue it produces.
func TestIncidentFlow_PastDuePromotionFeedsRevenue(t *testing.T) {
	log := zap.NewNop()
	st := store.Open(store.NewMemKV(), log, nil)
	auditSvc := NewAuditService(st, log, nil)
	t.Cleanup(auditSvc.Shutdown)
	incidentSvc := NewIncidentService(st, auditSvc, log)
	reportSvc := NewReportService(st, log)

	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	incidentSvc.now = func() time.Time { return now }
	reportSvc.now = func() time.Time { return now }

	cost := 50.0
	created, err := incidentSvc.CreateIncident(context.Background(), &incident.CreateCommand{
		PatientID:       "p1",
		Title:           "Checkup",
		AppointmentDate: domain.NewDateTime(2026, time.March, 14, 9, 0),
		Cost:            &cost,
		Status:          incident.StatusPending,
	}, testAdmin, "")
	require.NoError(t, err)

	// Stored status stays Pending; the list shows it as Completed.
	stored, err := st.GetIncident(created.ID)
	require.NoError(t, err)
	assert.Equal(t, incident.StatusPending, stored.Status)

	listed := incidentSvc.ListIncidents(&IncidentListQuery{Search: "checkup"})
	require.Len(t, listed.Incidents, 1)
	assert.Equal(t, incident.StatusCompleted, listed.Incidents[0].EffectiveStatus)

	// And yesterday's revenue bucket picks up the 50.
	buckets := reportSvc.RevenueSeries(views.RangeWeek)
	require.Len(t, buckets, 7)
	assert.Equal(t, 50.0, buckets[5].Total)

	summary := reportSvc.Summary()
	assert.GreaterOrEqual(t, summary.TotalRevenue, 50.0)
}
