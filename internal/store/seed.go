package store

import (
	"time"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/domain/incident"
	"github.com/dentware/clinicdesk/internal/domain/patient"
)

// SeedPatients is the default dataset used when the persisted collection
// is missing or unreadable. It matches the sample data the dashboard
// ships with so a fresh install is never empty.
func SeedPatients() []patient.Patient {
	return []patient.Patient{
		{
			ID:         "p1",
			Name:       "John Doe",
			DOB:        domain.NewDate(1990, time.May, 10),
			Contact:    "1234567890",
			HealthInfo: "No allergies",
		},
	}
}

func SeedIncidents() []incident.Incident {
	return []incident.Incident{
		{
			ID:              "i1",
			PatientID:       "p1",
			Title:           "Toothache",
			Description:     "Upper molar pain",
			Comments:        "Sensitive to cold",
			AppointmentDate: domain.NewDateTime(2025, time.July, 1, 10, 0),
			Cost:            80,
			Status:          incident.StatusCompleted,
			Files: []incident.Attachment{
				{Name: "invoice.pdf", URL: ""},
				{Name: "xray.png", URL: ""},
			},
		},
	}
}
