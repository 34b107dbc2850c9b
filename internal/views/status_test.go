package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/domain/incident"
)

func TestEffectiveStatus_PromotesPastDue(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)

	past := incident.Incident{
		Status:          incident.StatusPending,
		AppointmentDate: domain.NewDateTime(2026, time.March, 10, 9, 0),
	}
	assert.Equal(t, incident.StatusCompleted, EffectiveStatus(past, now))

	past.Status = incident.StatusInProgress
	assert.Equal(t, incident.StatusCompleted, EffectiveStatus(past, now))
}

func TestEffectiveStatus_LeavesFutureAndTerminal(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)

	future := incident.Incident{
		Status:          incident.StatusPending,
		AppointmentDate: domain.NewDateTime(2026, time.March, 20, 9, 0),
	}
	assert.Equal(t, incident.StatusPending, EffectiveStatus(future, now))

	cancelled := incident.Incident{
		Status:          incident.StatusCancelled,
		AppointmentDate: domain.NewDateTime(2026, time.March, 10, 9, 0),
	}
	assert.Equal(t, incident.StatusCancelled, EffectiveStatus(cancelled, now))

	completed := incident.Incident{
		Status:          incident.StatusCompleted,
		AppointmentDate: domain.NewDateTime(2026, time.March, 10, 9, 0),
	}
	assert.Equal(t, incident.StatusCompleted, EffectiveStatus(completed, now))
}

func TestEffectiveStatus_NeverMutatesStoredStatus(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	inc := incident.Incident{
		Status:          incident.StatusPending,
		AppointmentDate: domain.NewDateTime(2026, time.March, 10, 9, 0),
	}

	EffectiveStatus(inc, now)
	EffectiveStatus(inc, now)

	assert.Equal(t, incident.StatusPending, inc.Status, "stored status must stay untouched")
}

func TestEffectiveStatus_Idempotent(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	inc := incident.Incident{
		Status:          incident.StatusPending,
		AppointmentDate: domain.NewDateTime(2026, time.March, 10, 9, 0),
	}

	first := EffectiveStatus(inc, now)
	inc.Status = first
	second := EffectiveStatus(inc, now)

	assert.Equal(t, first, second)
}
