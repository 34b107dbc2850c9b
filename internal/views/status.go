// Package views computes presentation-ready aggregates from the raw
// collections. Every function here is pure: it takes the collections and
// an explicit clock and returns fresh values, so recomputing on every
// request is always safe and nothing is ever written back.
package views

import (
	"time"

	"github.com/dentware/clinicdesk/internal/domain/incident"
)

// EffectiveStatus is the single source of truth for "what status should
// this appointment display as". Past-due Pending and In Progress
// appointments promote to Completed; Completed and Cancelled never change.
// The stored status field is never mutated.
func EffectiveStatus(inc incident.Incident, now time.Time) incident.Status {
	if inc.AppointmentDate.Before(now) &&
		(inc.Status == incident.StatusPending || inc.Status == incident.StatusInProgress) {
		return incident.StatusCompleted
	}
	return inc.Status
}
