package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/clinicsched/medical-scheduler/internal/audit"
	domain "github.com/clinicsched/medical-scheduler/internal/domain/scheduling"
	"github.com/clinicsched/medical-scheduler/internal/httperr"
	"github.com/clinicsched/medical-scheduler/internal/models"
	"github.com/clinicsched/medical-scheduler/internal/timezone"
)

type UpdateAppointmentInput struct {
	PatientID   *uint
	SlotID      *uint
	ScheduledAt *time.Time
	Status      *string
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute applies a partial update. Changing the slot releases the old one
// and occupies the new one in a single transaction; the new slot must belong
// to the same doctor and pass the eligibility check.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uint,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	if in.PatientID != nil {
		exists, err := uc.repo.PatientExists(ctx, *in.PatientID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, httperr.ErrNotFound("patient_not_found")
		}
		ap.PatientID = *in.PatientID
	}

	oldStatus := domain.Status(ap.Status)
	oldSlotID := ap.SlotID
	targetSlot := ap.Slot

	finalStatus := oldStatus
	statusEffect := domain.EffectNone
	if in.Status != nil {
		to := domain.Status(strings.ToUpper(*in.Status))
		statusEffect, err = domain.ApplyStatus(ap, to, timezone.Now())
		if err != nil {
			return nil, err
		}
		finalStatus = to
	}

	slotChanged := in.SlotID != nil && (oldSlotID == nil || *oldSlotID != *in.SlotID)
	if slotChanged {
		newSlot, err := uc.repo.GetSlotWithWindow(ctx, *in.SlotID)
		if err != nil {
			return nil, httperr.ErrNotFound("slot_not_found")
		}

		if !newSlot.Available {
			return nil, httperr.ErrValidation("slot_unavailable")
		}
		active, err := uc.repo.CountActiveAppointmentsForSlot(ctx, newSlot.ID, ap.ID)
		if err != nil {
			return nil, err
		}
		if active > 0 {
			return nil, httperr.ErrValidation("slot_unavailable")
		}

		if newSlot.Window.DoctorID != ap.DoctorID {
			return nil, httperr.ErrValidation("slot_doctor_mismatch")
		}

		ap.SlotID = in.SlotID
		targetSlot = newSlot
		if in.ScheduledAt == nil {
			ap.ScheduledAt = newSlot.StartTime
		}
	}

	if in.ScheduledAt != nil {
		if targetSlot != nil {
			if in.ScheduledAt.Before(targetSlot.StartTime) || !in.ScheduledAt.Before(targetSlot.EndTime) {
				return nil, httperr.ErrValidation("scheduled_time_outside_slot")
			}
		}
		ap.ScheduledAt = *in.ScheduledAt
	}

	// Work out the slot writes that must ride the same transaction.
	var releaseSlotID, occupySlotID *uint
	if slotChanged {
		if oldSlotID != nil && oldStatus.Active() {
			releaseSlotID = oldSlotID
		}
		if finalStatus.Active() {
			occupySlotID = ap.SlotID
		}
	} else if ap.SlotID != nil {
		switch statusEffect {
		case domain.EffectRelease:
			releaseSlotID = ap.SlotID
		case domain.EffectOccupy:
			occupySlotID = ap.SlotID
		}
	}

	if err := uc.repo.SaveAppointmentSwapping(ctx, ap, releaseSlotID, occupySlotID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return uc.repo.GetAppointment(ctx, ap.ID)
}
