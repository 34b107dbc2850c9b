package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/domain/patient"
	"github.com/dentware/clinicdesk/internal/store"
	"github.com/dentware/clinicdesk/internal/views"
)

var testAdmin = domain.User{ID: "1", Role: domain.RoleAdmin, Email: "admin@entnt.in"}

func newPatientFixture(t *testing.T) (*PatientService, *store.DataStore) {
	t.Helper()
	log := zap.NewNop()
	st := store.Open(store.NewMemKV(), log, nil)
	auditSvc := NewAuditService(st, log, nil)
	t.Cleanup(auditSvc.Shutdown)
	return NewPatientService(st, auditSvc, log), st
}

func TestCreatePatient(t *testing.T) {
	svc, st := newPatientFixture(t)

	p, err := svc.CreatePatient(context.Background(), &patient.CreateCommand{
		Name:    "  Jane Roe  ",
		DOB:     domain.NewDate(1992, time.April, 2),
		Contact: "9876543210",
		Tags:    []string{"VIP", "VIP", "", "ortho"},
	}, testAdmin, "127.0.0.1")
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.NotEqual(t, "p1", p.ID)
	assert.Equal(t, "Jane Roe", p.Name, "name is trimmed")
	assert.Equal(t, []string{"VIP", "ortho"}, p.Tags, "tags deduped, order kept")

	stored, err := st.GetPatient(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, stored)
}

func TestCreatePatient_Validation(t *testing.T) {
	svc, _ := newPatientFixture(t)

	_, err := svc.CreatePatient(context.Background(), &patient.CreateCommand{
		Name: "   ",
		DOB:  domain.NewDate(1992, time.April, 2),
	}, testAdmin, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name is required")

	_, err = svc.CreatePatient(context.Background(), &patient.CreateCommand{
		Name:   "Bad Gender",
		DOB:    domain.NewDate(1992, time.April, 2),
		Gender: "Unknown",
	}, testAdmin, "")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "gender is invalid")

	_, err = svc.CreatePatient(context.Background(), &patient.CreateCommand{
		Name: "Future Child",
		DOB:  domain.NewDate(2999, time.January, 1),
	}, testAdmin, "")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "dob cannot be in the future")
}

func TestUpdatePatient_PartialPatch(t *testing.T) {
	svc, _ := newPatientFixture(t)

	contact := "0000000000"
	p, err := svc.UpdatePatient(context.Background(), "p1", &patient.Patch{Contact: &contact}, testAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, "0000000000", p.Contact)
	assert.Equal(t, "John Doe", p.Name, "untouched fields keep their value")
}

func TestUpdatePatient_UnknownID(t *testing.T) {
	svc, _ := newPatientFixture(t)
	name := "X"
	_, err := svc.UpdatePatient(context.Background(), "ghost", &patient.Patch{Name: &name}, testAdmin, "")
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}

func TestDeletePatient(t *testing.T) {
	svc, st := newPatientFixture(t)

	require.NoError(t, svc.DeletePatient(context.Background(), "p1", testAdmin, ""))

	_, err := st.GetPatient("p1")
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
	assert.Empty(t, st.Incidents(), "seed incident cascades away with its patient")
}

func TestListPatients_SearchSortPaginate(t *testing.T) {
	svc, _ := newPatientFixture(t)

	for _, name := range []string{"Alice", "Bob", "Carol", "Dave", "Eve", "Frank"} {
		_, err := svc.CreatePatient(context.Background(), &patient.CreateCommand{
			Name: name,
			DOB:  domain.NewDate(1990, time.January, 1),
		}, testAdmin, "")
		require.NoError(t, err)
	}

	page := svc.ListPatients(&ListQuery{SortBy: views.SortByName, SortDir: views.Asc, Page: 1, PageSize: 3})
	assert.Equal(t, 7, page.TotalCount, "six created plus the seed patient")
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Patients, 3)
	assert.Equal(t, "Alice", page.Patients[0].Name)

	last := svc.ListPatients(&ListQuery{SortBy: views.SortByName, SortDir: views.Asc, Page: 3, PageSize: 3})
	require.Len(t, last.Patients, 1)

	searched := svc.ListPatients(&ListQuery{Search: "john"})
	require.Len(t, searched.Patients, 1)
	assert.Equal(t, "John Doe", searched.Patients[0].Name)
	assert.Equal(t, "JD", searched.Patients[0].Initials)
	assert.Equal(t, 1, searched.Patients[0].Visits, "seed incident counted")
}

func TestListPatients_NormalizesBadQuery(t *testing.T) {
	svc, _ := newPatientFixture(t)

	page := svc.ListPatients(&ListQuery{SortBy: "bogus", SortDir: "sideways", Page: -2, PageSize: 9999})
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
	require.Len(t, page.Patients, 1)
}
