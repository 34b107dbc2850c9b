package patient

import "errors"

var (
	ErrPatientNotFound   = errors.New("patient not found")
	ErrNameRequired      = errors.New("patient name is required")
	ErrInvalidDOB        = errors.New("date of birth cannot be in the future")
	ErrInvalidGender     = errors.New("invalid gender value")
	ErrInvalidBloodGroup = errors.New("invalid blood group")
)
