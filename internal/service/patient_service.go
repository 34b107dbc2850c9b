package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/domain/patient"
	"github.com/dentware/clinicdesk/internal/store"
	"github.com/dentware/clinicdesk/internal/views"
)

type PatientService struct {
	store    *store.DataStore
	auditSvc *AuditService
	log      *zap.Logger
	now      func() time.Time
}

func NewPatientService(st *store.DataStore, auditSvc *AuditService, log *zap.Logger) *PatientService {
	return &PatientService{
		store:    st,
		auditSvc: auditSvc,
		log:      log,
		now:      time.Now,
	}
}

func (s *PatientService) CreatePatient(ctx context.Context, cmd *patient.CreateCommand, caller domain.User, ip string) (patient.Patient, error) {
	if err := s.validateCreateCommand(cmd); err != nil {
		return patient.Patient{}, err
	}

	p := s.store.AddPatient(patient.Patient{
		Name:       strings.TrimSpace(cmd.Name),
		DOB:        cmd.DOB,
		Contact:    strings.TrimSpace(cmd.Contact),
		Gender:     cmd.Gender,
		BloodGroup: cmd.BloodGroup,
		HealthInfo: cmd.HealthInfo,
		Notes:      cmd.Notes,
		Tags:       cmd.Tags,
		ProfilePic: cmd.ProfilePic,
	})

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.ID,
		UserRole:     string(caller.Role),
		Action:       string(domain.ActionCreate),
		ResourceType: "patient",
		ResourceID:   p.ID,
		IPAddress:    ip,
	})

	s.log.Info("patient created",
		zap.String("patient_id", p.ID),
		zap.String("created_by", caller.ID),
	)

	return p, nil
}

func (s *PatientService) GetPatient(id string) (patient.Patient, error) {
	return s.store.GetPatient(id)
}

func (s *PatientService) UpdatePatient(ctx context.Context, id string, patch *patient.Patch, caller domain.User, ip string) (patient.Patient, error) {
	if err := s.validatePatch(patch); err != nil {
		return patient.Patient{}, err
	}

	p, err := s.store.UpdatePatient(id, *patch)
	if err != nil {
		return patient.Patient{}, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.ID,
		UserRole:     string(caller.Role),
		Action:       string(domain.ActionUpdate),
		ResourceType: "patient",
		ResourceID:   id,
		IPAddress:    ip,
	})

	return p, nil
}

// DeletePatient removes the patient and every incident that references it
// in one step.
func (s *PatientService) DeletePatient(ctx context.Context, id string, caller domain.User, ip string) error {
	removed, err := s.store.DeletePatient(id)
	if err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       caller.ID,
		UserRole:     string(caller.Role),
		Action:       string(domain.ActionDelete),
		ResourceType: "patient",
		ResourceID:   id,
		IPAddress:    ip,
	})

	s.log.Info("patient deleted",
		zap.String("patient_id", id),
		zap.Int("cascaded_incidents", removed),
	)
	return nil
}

// ListQuery drives the admin patients table: search, sortable columns,
// pagination.
type ListQuery struct {
	Search   string
	SortBy   views.SortKey
	SortDir  views.Direction
	Page     int
	PageSize int
}

// PatientRow decorates a patient with the computed columns the table
// shows.
type PatientRow struct {
	patient.Patient
	Initials  string `json:"initials"`
	Age       int    `json:"age"`
	Visits    int    `json:"visits"`
	LastVisit string `json:"lastVisit,omitempty"`
}

type PagedPatients struct {
	Patients   []PatientRow `json:"patients"`
	TotalCount int          `json:"totalCount"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
}

func (s *PatientService) ListPatients(q *ListQuery) *PagedPatients {
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if !q.SortBy.IsValid() {
		q.SortBy = views.SortByName
	}
	if q.SortDir != views.Desc {
		q.SortDir = views.Asc
	}

	now := s.now()
	patients := s.store.Patients()
	incidents := s.store.Incidents()

	filtered := views.FilterPatients(patients, q.Search)
	sorted := views.SortPatients(filtered, q.SortBy, q.SortDir, incidents, now)
	page := views.Paginate(sorted, q.Page, q.PageSize)

	rows := make([]PatientRow, 0, len(page))
	for _, p := range page {
		row := PatientRow{
			Patient:  p,
			Initials: p.Initials(),
			Age:      views.Age(p.DOB, now),
			Visits:   views.VisitCount(p.ID, incidents),
		}
		if last, ok := views.LastVisit(p.ID, incidents); ok {
			row.LastVisit = domain.DateTime{Time: last}.String()
		}
		rows = append(rows, row)
	}

	return &PagedPatients{
		Patients:   rows,
		TotalCount: len(sorted),
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: views.TotalPages(len(sorted), q.PageSize),
	}
}

func (s *PatientService) validateCreateCommand(cmd *patient.CreateCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.Name) == "" {
		errs = append(errs, "name is required")
	}
	if cmd.DOB.IsZero() {
		errs = append(errs, "dob is required")
	} else if cmd.DOB.After(s.now()) {
		errs = append(errs, "dob cannot be in the future")
	}
	if !cmd.Gender.IsValid() {
		errs = append(errs, "gender is invalid")
	}
	if !cmd.BloodGroup.IsValid() {
		errs = append(errs, "bloodGroup is invalid")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func (s *PatientService) validatePatch(patch *patient.Patch) error {
	var errs []string

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		errs = append(errs, "name cannot be cleared")
	}
	if patch.DOB != nil && patch.DOB.After(s.now()) {
		errs = append(errs, "dob cannot be in the future")
	}
	if patch.Gender != nil && !patch.Gender.IsValid() {
		errs = append(errs, "gender is invalid")
	}
	if patch.BloodGroup != nil && !patch.BloodGroup.IsValid() {
		errs = append(errs, "bloodGroup is invalid")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
