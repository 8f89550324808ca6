package scheduling

import (
	"time"

	"github.com/clinicsched/medical-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus moves an appointment to a new status, stamping the lifecycle
// timestamps, and returns the slot effect the persistence layer must apply.
func ApplyStatus(ap *models.Appointment, to Status, now time.Time) (SlotEffect, error) {
	effect, err := Transition(Status(ap.Status), to)
	if err != nil {
		return EffectNone, err
	}

	ap.Status = string(to)

	switch to {
	case StatusCancelled, StatusRejected:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusPending, StatusAccepted:
		ap.CancelledAt = nil
	}

	return effect, nil
}
