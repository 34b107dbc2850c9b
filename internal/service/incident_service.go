package service

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/domain/catalog"
	"github.com/dentware/clinicdesk/internal/domain/incident"
	"github.com/dentware/clinicdesk/internal/store"
	"github.com/dentware/clinicdesk/internal/views"
)

type IncidentService struct {
	store    *store.DataStore
	auditSvc *AuditService
	log      *zap.Logger
	now      func() time.Time
}

func NewIncidentService(st *store.DataStore, auditSvc *AuditService, log *zap.Logger) *IncidentService {
	return &IncidentService{
		store:    st,
		auditSvc: auditSvc,
		log:      log,
		now:      time.Now,
	}
}

func (s *IncidentService) CreateIncident(ctx context.Context, cmd *incident.CreateCommand, caller domain.User, ip string) (incident.Incident, error) {
	if _, err := s.store.GetPatient(cmd.PatientID); err != nil {
		return incident.Incident{}, err
	}
	if err := s.validateCreateCommand(cmd); err != nil {
		return incident.Incident{}, err
	}

	status := cmd.Status
	if status == "" {
		status = incident.StatusPending
	}

	cost := catalog.DefaultCost(cmd.Title)
	if cmd.Cost != nil {
		cost = *cmd.Cost
	}

	inc := s.store.AddIncident(incident.Incident{
		PatientID:       cmd.PatientID,
		Title:           strings.TrimSpace(cmd.Title),
		Description:     cmd.Description,
		Comments:        cmd.Comments,
		AppointmentDate: cmd.AppointmentDate,
		NextDate:        cmd.NextDate,
		Cost:            cost,
		Status:          status,
		Files:           cmd.Files,
	})

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.ID,
		UserRole:     string(caller.Role),
		Action:       string(domain.ActionCreate),
		ResourceType: "incident",
		ResourceID:   inc.ID,
		IPAddress:    ip,
	})

	s.log.Info("incident created",
		zap.String("incident_id", inc.ID),
		zap.String("patient_id", inc.PatientID),
		zap.String("status", string(inc.Status)),
	)

	return inc, nil
}

func (s *IncidentService) GetIncident(id string) (incident.Incident, error) {
	return s.store.GetIncident(id)
}

func (s *IncidentService) UpdateIncident(ctx context.Context, id string, patch *incident.Patch, caller domain.User, ip string) (incident.Incident, error) {
	existing, err := s.store.GetIncident(id)
	if err != nil {
		return incident.Incident{}, err
	}
	if existing.Locked && !patch.OnlyTogglesLock() {
		return incident.Incident{}, incident.ErrIncidentLocked
	}
	if err := s.validatePatch(patch); err != nil {
		return incident.Incident{}, err
	}

	inc, err := s.store.UpdateIncident(id, *patch)
	if err != nil {
		return incident.Incident{}, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.ID,
		UserRole:     string(caller.Role),
		Action:       string(domain.ActionUpdate),
		ResourceType: "incident",
		ResourceID:   id,
		IPAddress:    ip,
	})

	return inc, nil
}

func (s *IncidentService) DeleteIncident(ctx context.Context, id string, caller domain.User, ip string) error {
	if err := s.store.DeleteIncident(id); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.ID,
		UserRole:     string(caller.Role),
		Action:       string(domain.ActionDelete),
		ResourceType: "incident",
		ResourceID:   id,
		IPAddress:    ip,
	})

	s.log.Info("incident deleted", zap.String("incident_id", id))
	return nil
}

// AppendNote adds a timestamped entry to the incident's append-only note
// log. Locked incidents still accept notes.
func (s *IncidentService) AppendNote(ctx context.Context, id, note string, caller domain.User, ip string) (incident.Incident, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return incident.Incident{}, &ValidationError{Fields: []string{"note is required"}}
	}

	inc, err := s.store.AppendIncidentNote(id, note)
	if err != nil {
		return incident.Incident{}, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.ID,
		UserRole:     string(caller.Role),
		Action:       string(domain.ActionUpdate),
		ResourceType: "incident",
		ResourceID:   id,
		IPAddress:    ip,
	})

	return inc, nil
}

// AttachFile stores the uploaded bytes inline as a data URI, matching how
// the rest of the record is kept in the key-value store.
func (s *IncidentService) AttachFile(ctx context.Context, id, name, contentType string, data []byte, caller domain.User, ip string) (incident.Incident, error) {
	if strings.TrimSpace(name) == "" {
		return incident.Incident{}, &ValidationError{Fields: []string{"file name is required"}}
	}
	if len(data) == 0 {
		return incident.Incident{}, &ValidationError{Fields: []string{"file is empty"}}
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	file := incident.Attachment{
		Name: name,
		URL:  "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
		Type: contentType,
		Size: int64(len(data)),
	}

	inc, err := s.store.AddIncidentFile(id, file)
	if err != nil {
		return incident.Incident{}, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.ID,
		UserRole:     string(caller.Role),
		Action:       string(domain.ActionUpdate),
		ResourceType: "incident",
		ResourceID:   id,
		IPAddress:    ip,
	})

	s.log.Info("file attached",
		zap.String("incident_id", id),
		zap.String("file", name),
		zap.Int("bytes", len(data)),
	)

	return inc, nil
}

// IncidentListQuery drives the admin appointments table. StatusFilter
// matches the stored status; "all" or empty skips the filter.
type IncidentListQuery struct {
	Search       string
	StatusFilter string
	Page         int
	PageSize     int
}

// IncidentRow decorates an incident with the resolved patient name and the
// display status after time-based promotion.
type IncidentRow struct {
	incident.Incident
	PatientName     string          `json:"patientName"`
	EffectiveStatus incident.Status `json:"effectiveStatus"`
}

type PagedIncidents struct {
	Incidents  []IncidentRow `json:"incidents"`
	TotalCount int           `json:"totalCount"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

func (s *IncidentService) ListIncidents(q *IncidentListQuery) *PagedIncidents {
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	now := s.now()
	patients := s.store.Patients()
	incidents := s.store.Incidents()

	filtered := views.FilterIncidents(incidents, patients, q.Search, q.StatusFilter)
	sorted := views.SortIncidentsByDate(filtered, true)
	page := views.Paginate(sorted, q.Page, q.PageSize)

	rows := make([]IncidentRow, 0, len(page))
	for _, inc := range page {
		rows = append(rows, IncidentRow{
			Incident:        inc,
			PatientName:     views.PatientName(patients, inc.PatientID),
			EffectiveStatus: views.EffectiveStatus(inc, now),
		})
	}

	return &PagedIncidents{
		Incidents:  rows,
		TotalCount: len(sorted),
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: views.TotalPages(len(sorted), q.PageSize),
	}
}

func (s *IncidentService) validateCreateCommand(cmd *incident.CreateCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.Title) == "" {
		errs = append(errs, "title is required")
	}
	if cmd.AppointmentDate.IsZero() {
		errs = append(errs, "appointmentDate is required")
	}
	if cmd.Status != "" && !cmd.Status.IsValid() {
		errs = append(errs, "status is invalid")
	}
	if cmd.Cost != nil && *cmd.Cost < 0 {
		errs = append(errs, "cost cannot be negative")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func (s *IncidentService) validatePatch(patch *incident.Patch) error {
	var errs []string

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		errs = append(errs, "title cannot be cleared")
	}
	if patch.AppointmentDate != nil && patch.AppointmentDate.IsZero() {
		errs = append(errs, "appointmentDate cannot be cleared")
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		errs = append(errs, "status is invalid")
	}
	if patch.Cost != nil && *patch.Cost < 0 {
		errs = append(errs, "cost cannot be negative")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
