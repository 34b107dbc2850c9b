package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/domain/incident"
	"github.com/dentware/clinicdesk/internal/domain/patient"
	"github.com/dentware/clinicdesk/pkg/metrics"
)

// auditLogCap bounds the persisted audit trail; oldest entries are dropped
// first.
const auditLogCap = 1000

// DataStore is the data access layer. The in-memory collections are the
// source of truth for the running process; every mutation writes the whole
// collection back to the KV store, and a failed write only means the change
// is lost on restart, never that the running state is corrupted.
//
// Construct one per process with Open and inject it; there is no package
// level singleton.
type DataStore struct {
	mu      sync.RWMutex
	kv      KV
	log     *zap.Logger
	metrics *metrics.Collector
	now     func() time.Time

	patients  []patient.Patient
	incidents []incident.Incident
	audit     []domain.AuditLog
}

type Option func(*DataStore)

// WithClock overrides the wall clock, for deterministic tests of the
// timestamped note log and audit entries.
func WithClock(now func() time.Time) Option {
	return func(s *DataStore) { s.now = now }
}

// Open loads both collections from kv. A missing or malformed collection
// falls back to the seed dataset rather than failing startup.
func Open(kv KV, log *zap.Logger, m *metrics.Collector, opts ...Option) *DataStore {
	s := &DataStore{
		kv:      kv,
		log:     log,
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if !loadCollection(s, KeyPatients, &s.patients) {
		s.patients = SeedPatients()
		s.seedFallback(KeyPatients)
	}
	if !loadCollection(s, KeyIncidents, &s.incidents) {
		s.incidents = SeedIncidents()
		s.seedFallback(KeyIncidents)
	}
	// A broken audit trail is not worth seeding; start fresh.
	if !loadCollection(s, KeyAuditLog, &s.audit) {
		s.audit = nil
	}

	return s
}

func loadCollection[T any](s *DataStore, key string, dst *[]T) bool {
	data, ok, err := s.kv.Get(key)
	if err != nil {
		s.log.Warn("reading collection failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.log.Warn("stored collection is malformed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *DataStore) seedFallback(key string) {
	s.log.Info("using seed dataset", zap.String("key", key))
	if s.metrics != nil {
		s.metrics.SeedFallbacks.Inc()
	}
}

// persist serializes v under key. Write failures are swallowed by design:
// the in-memory state stays authoritative for the session and the failure
// is surfaced through logs and metrics only.
func (s *DataStore) persist(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error("marshaling collection failed", zap.String("key", key), zap.Error(err))
		s.persistFailure(key)
		return
	}
	if err := s.kv.Set(key, data); err != nil {
		s.log.Warn("persisting collection failed; changes will be lost on restart",
			zap.String("key", key), zap.Error(err))
		s.persistFailure(key)
	}
}

func (s *DataStore) persistFailure(key string) {
	if s.metrics != nil {
		s.metrics.PersistFailures.WithLabelValues(key).Inc()
	}
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// ---- patients ----

// Patients returns a snapshot of the patient collection in insertion
// order.
func (s *DataStore) Patients() []patient.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]patient.Patient, len(s.patients))
	copy(out, s.patients)
	return out
}

func (s *DataStore) GetPatient(id string) (patient.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return patient.Patient{}, patient.ErrPatientNotFound
}

// AddPatient assigns a fresh unique id, appends and persists. The UUID
// based id cannot collide under rapid successive calls.
func (s *DataStore) AddPatient(p patient.Patient) patient.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = newID("p")
	p.Tags = patient.NormalizeTags(p.Tags)
	s.patients = append(s.patients, p)
	s.persist(KeyPatients, s.patients)

	if s.metrics != nil {
		s.metrics.PatientsCreatedTotal.Inc()
	}
	return p
}

func (s *DataStore) UpdatePatient(id string, patch patient.Patch) (patient.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.patients {
		if s.patients[i].ID != id {
			continue
		}
		patch.Apply(&s.patients[i])
		s.persist(KeyPatients, s.patients)
		return s.patients[i], nil
	}
	return patient.Patient{}, patient.ErrPatientNotFound
}

// DeletePatient removes the patient and cascades to every incident that
// references it. Both removals happen under one lock; no caller can
// observe the intermediate state. Returns the number of incidents removed
// by the cascade.
func (s *DataStore) DeletePatient(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.patients {
		if s.patients[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, patient.ErrPatientNotFound
	}
	s.patients = append(s.patients[:idx], s.patients[idx+1:]...)

	kept := s.incidents[:0]
	removed := 0
	for _, inc := range s.incidents {
		if inc.PatientID == id {
			removed++
			continue
		}
		kept = append(kept, inc)
	}
	s.incidents = kept

	s.persist(KeyPatients, s.patients)
	s.persist(KeyIncidents, s.incidents)

	if s.metrics != nil {
		s.metrics.PatientsDeletedTotal.Inc()
		s.metrics.CascadeDeletedTotal.Add(float64(removed))
	}
	return removed, nil
}

// ---- incidents ----

func (s *DataStore) Incidents() []incident.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]incident.Incident, len(s.incidents))
	copy(out, s.incidents)
	return out
}

func (s *DataStore) GetIncident(id string) (incident.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inc := range s.incidents {
		if inc.ID == id {
			return inc, nil
		}
	}
	return incident.Incident{}, incident.ErrIncidentNotFound
}

// PatientIncidents returns the incidents referencing one patient, in
// insertion order.
func (s *DataStore) PatientIncidents(patientID string) []incident.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []incident.Incident
	for _, inc := range s.incidents {
		if inc.PatientID == patientID {
			out = append(out, inc)
		}
	}
	return out
}

func (s *DataStore) AddIncident(inc incident.Incident) incident.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()

	inc.ID = newID("i")
	s.incidents = append(s.incidents, inc)
	s.persist(KeyIncidents, s.incidents)

	if s.metrics != nil {
		s.metrics.IncidentsTotal.WithLabelValues(string(inc.Status)).Inc()
	}
	return inc
}

func (s *DataStore) UpdateIncident(id string, patch incident.Patch) (incident.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.incidents {
		if s.incidents[i].ID != id {
			continue
		}
		patch.Apply(&s.incidents[i])
		s.persist(KeyIncidents, s.incidents)
		return s.incidents[i], nil
	}
	return incident.Incident{}, incident.ErrIncidentNotFound
}

// DeleteIncident removes a single incident. Incidents are leaf entities;
// nothing cascades.
func (s *DataStore) DeleteIncident(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.incidents {
		if s.incidents[i].ID != id {
			continue
		}
		s.incidents = append(s.incidents[:i], s.incidents[i+1:]...)
		s.persist(KeyIncidents, s.incidents)
		return nil
	}
	return incident.ErrIncidentNotFound
}

// AppendIncidentNote appends a timestamped entry to the incident's
// append-only note log.
func (s *DataStore) AppendIncidentNote(id, note string) (incident.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.incidents {
		if s.incidents[i].ID != id {
			continue
		}
		entry := "[" + s.now().Format("Jan 2, 2006 15:04") + "] " + note
		if s.incidents[i].Notes == "" {
			s.incidents[i].Notes = entry
		} else {
			s.incidents[i].Notes += "\n" + entry
		}
		s.persist(KeyIncidents, s.incidents)
		return s.incidents[i], nil
	}
	return incident.Incident{}, incident.ErrIncidentNotFound
}

// AddIncidentFile appends one attachment. Uploads may complete in any
// order; each completion appends independently, so concurrent completions
// only affect display order, never integrity.
func (s *DataStore) AddIncidentFile(id string, file incident.Attachment) (incident.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.incidents {
		if s.incidents[i].ID != id {
			continue
		}
		s.incidents[i].Files = append(s.incidents[i].Files, file)
		s.persist(KeyIncidents, s.incidents)
		return s.incidents[i], nil
	}
	return incident.Incident{}, incident.ErrIncidentNotFound
}

// ---- session ----

// SaveSession persists the authenticated identity; it survives restarts
// and has no expiry.
func (s *DataStore) SaveSession(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist(KeyAuthUser, u)
}

func (s *DataStore) Session() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok, err := s.kv.Get(KeyAuthUser)
	if err != nil || !ok {
		return domain.User{}, false
	}
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		s.log.Warn("stored session is malformed", zap.Error(err))
		return domain.User{}, false
	}
	return u, true
}

func (s *DataStore) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(KeyAuthUser); err != nil {
		s.log.Warn("clearing session failed", zap.Error(err))
		s.persistFailure(KeyAuthUser)
	}
}

// ---- admin preference flags ----

func (s *DataStore) Flag(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok, err := s.kv.Get(key)
	if err != nil || !ok {
		return false
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return false
	}
	return v
}

func (s *DataStore) SetFlag(key string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist(key, v)
}

// ---- audit ----

// CreateAuditLog satisfies the audit repository used by the async audit
// worker. The trail is capped; oldest entries roll off first.
func (s *DataStore) CreateAuditLog(_ context.Context, entry *domain.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = newID("a")
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = s.now()
	}
	s.audit = append(s.audit, *entry)
	if len(s.audit) > auditLogCap {
		s.audit = s.audit[len(s.audit)-auditLogCap:]
	}
	s.persist(KeyAuditLog, s.audit)
	return nil
}

// AuditLogs returns the audit trail, newest last.
func (s *DataStore) AuditLogs() []domain.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AuditLog, len(s.audit))
	copy(out, s.audit)
	return out
}
