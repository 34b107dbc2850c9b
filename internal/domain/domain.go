package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin   Role = "Admin"
	RolePatient Role = "Patient"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RolePatient:
		return true
	}
	return false
}

// User is an entry in the clinic's credential directory. The password is
// never serialized; the record stored as the session identity carries only
// id, role, email and the linked patient id.
type User struct {
	ID    string `json:"id"`
	Role  Role   `json:"role"`
	Email string `json:"email"`

	Password string `json:"-"`

	// For patient accounts, links to their patient record.
	PatientID string `json:"patientId,omitempty"`
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"` // Always "Bearer"
}

type Claims struct {
	UserID    string `json:"sub"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	PatientID string `json:"patient_id,omitempty"`
}

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
	ActionLogin  AuditAction = "login"
	ActionLogout AuditAction = "logout"
)

type AuditLog struct {
	ID           string      `json:"id"`
	OccurredAt   time.Time   `json:"occurredAt"`
	UserID       string      `json:"userId"`
	UserRole     Role        `json:"userRole"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resourceType"`
	ResourceID   string      `json:"resourceId,omitempty"`
	IPAddress    string      `json:"ipAddress,omitempty"`
	RequestID    string      `json:"requestId,omitempty"`
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// Date is a calendar date serialized as "2006-01-02", the format the stored
// collections use for patient dob and incident follow-up dates.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateTime is a wall-clock timestamp serialized as "2006-01-02T15:04:05",
// the format the stored incident collection uses for appointment dates.
type DateTime struct {
	time.Time
}

func NewDateTime(year int, month time.Month, day, hour, min int) DateTime {
	return DateTime{time.Date(year, month, day, hour, min, 0, 0, time.Local)}
}

func ParseDateTime(s string) (DateTime, error) {
	if s == "" {
		return DateTime{}, nil
	}
	for _, layout := range []string{dateTimeLayout, "2006-01-02T15:04", time.RFC3339, dateLayout} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return DateTime{t}, nil
		}
	}
	return DateTime{}, fmt.Errorf("parsing datetime %q: unrecognized format", s)
}

func (d DateTime) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = DateTime{}
		return nil
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
