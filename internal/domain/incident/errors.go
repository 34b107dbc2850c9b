package incident

import "errors"

var (
	ErrIncidentNotFound        = errors.New("incident not found")
	ErrTitleRequired           = errors.New("treatment title is required")
	ErrAppointmentDateRequired = errors.New("appointment date is required")
	ErrNegativeCost            = errors.New("cost cannot be negative")
	ErrInvalidStatus           = errors.New("invalid incident status")
	ErrIncidentLocked          = errors.New("incident is locked")
)
