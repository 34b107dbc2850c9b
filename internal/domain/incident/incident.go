package incident

import (
	"github.com/dentware/clinicdesk/internal/domain"
)

// Status is the persisted appointment status. The time-based promotion of
// past-due Pending/In Progress appointments is a display-only transform
// (views.EffectiveStatus) and is never written back to this field.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Attachment is a file stored inline as a data URI.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// Incident is an appointment / treatment episode tied to one patient. It
// mirrors the persisted JSON layout of the `incidents` collection.
//
// PatientID must reference an existing patient at creation time. Dangling
// references (patient deleted out from under an incident by an older
// dataset) are tolerated by the views and rendered as "Unknown".
type Incident struct {
	ID          string `json:"id"`
	PatientID   string `json:"patientId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Comments    string `json:"comments,omitempty"`

	AppointmentDate domain.DateTime `json:"appointmentDate"`
	NextDate        *domain.Date    `json:"nextDate,omitempty"`

	Cost   float64 `json:"cost"`
	Status Status  `json:"status"`

	// Notes is an append-only log of timestamped entries, newline-joined.
	Notes string `json:"notes,omitempty"`

	Files []Attachment `json:"files,omitempty"`

	// Locked marks the record read-only at the presentation boundary. The
	// data layer itself does not enforce it.
	Locked bool `json:"locked,omitempty"`
}

type CreateCommand struct {
	PatientID       string          `json:"patientId"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Comments        string          `json:"comments"`
	AppointmentDate domain.DateTime `json:"appointmentDate"`
	NextDate        *domain.Date    `json:"nextDate"`

	// Cost left nil is defaulted from the service catalog price for Title.
	// Once persisted, cost is authoritative; the catalog never overrides it.
	Cost   *float64     `json:"cost"`
	Status Status       `json:"status"`
	Files  []Attachment `json:"files"`
}

// Patch carries a partial update. Nil fields are left alone. NextDate is
// cleared with ClearNextDate rather than by omission, so dropping a
// follow-up is an explicit decision.
type Patch struct {
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	Comments        *string          `json:"comments"`
	AppointmentDate *domain.DateTime `json:"appointmentDate"`
	NextDate        *domain.Date     `json:"nextDate"`
	ClearNextDate   bool             `json:"clearNextDate"`
	Cost            *float64         `json:"cost"`
	Status          *Status          `json:"status"`
	Locked          *bool            `json:"locked"`
}

func (p *Patch) Apply(dst *Incident) {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Comments != nil {
		dst.Comments = *p.Comments
	}
	if p.AppointmentDate != nil {
		dst.AppointmentDate = *p.AppointmentDate
	}
	if p.NextDate != nil {
		dst.NextDate = p.NextDate
	}
	if p.ClearNextDate {
		dst.NextDate = nil
	}
	if p.Cost != nil {
		dst.Cost = *p.Cost
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Locked != nil {
		dst.Locked = *p.Locked
	}
}

// OnlyTogglesLock reports whether the patch touches anything beyond the lock
// flag itself. Used by the presentation layer to allow unlocking a locked
// record while refusing every other edit.
func (p *Patch) OnlyTogglesLock() bool {
	return p.Title == nil && p.Description == nil && p.Comments == nil &&
		p.AppointmentDate == nil && p.NextDate == nil && !p.ClearNextDate &&
		p.Cost == nil && p.Status == nil && p.Locked != nil
}
