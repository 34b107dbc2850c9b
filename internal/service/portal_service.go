package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/dentware/clinicdesk/internal/domain/incident"
	"github.com/dentware/clinicdesk/internal/domain/patient"
	"github.com/dentware/clinicdesk/internal/store"
	"github.com/dentware/clinicdesk/internal/views"
)

// PortalService serves the patient-facing portal. Every method scopes its
// reads to the one patient id carried by the caller's token; the handler
// layer guarantees that id belongs to the authenticated patient.
type PortalService struct {
	store *store.DataStore
	log   *zap.Logger
	now   func() time.Time
}

func NewPortalService(st *store.DataStore, log *zap.Logger) *PortalService {
	return &PortalService{
		store: st,
		log:   log,
		now:   time.Now,
	}
}

func (s *PortalService) Profile(patientID string) (patient.Patient, error) {
	return s.store.GetPatient(patientID)
}

// PortalAppointment is an incident decorated with its display status.
type PortalAppointment struct {
	incident.Incident
	EffectiveStatus incident.Status `json:"effectiveStatus"`
}

func (s *PortalService) decorate(incidents []incident.Incident, now time.Time) []PortalAppointment {
	out := make([]PortalAppointment, 0, len(incidents))
	for _, inc := range incidents {
		out = append(out, PortalAppointment{
			Incident:        inc,
			EffectiveStatus: views.EffectiveStatus(inc, now),
		})
	}
	return out
}

func (s *PortalService) Upcoming(patientID string) []PortalAppointment {
	now := s.now()
	return s.decorate(views.PatientUpcoming(s.store.Incidents(), patientID, now), now)
}

// HistoryQuery filters and orders a patient's past visits.
type HistoryQuery struct {
	Search       string
	StatusFilter string
	SortBy       views.HistorySort
}

func (s *PortalService) History(patientID string, q *HistoryQuery) []PortalAppointment {
	if q.SortBy != views.HistoryByCost {
		q.SortBy = views.HistoryByDate
	}
	now := s.now()
	return s.decorate(
		views.PatientHistory(s.store.Incidents(), patientID, q.Search, q.StatusFilter, q.SortBy, now),
		now,
	)
}

func (s *PortalService) Totals(patientID string) views.PatientTotals {
	return views.PatientPortalTotals(s.store.Incidents(), patientID, s.now())
}
