package appointment

import (
	"context"
	"strings"

	"github.com/clinicsched/medical-scheduler/internal/audit"
	domain "github.com/clinicsched/medical-scheduler/internal/domain/scheduling"
	"github.com/clinicsched/medical-scheduler/internal/httperr"
	"github.com/clinicsched/medical-scheduler/internal/models"
	"github.com/clinicsched/medical-scheduler/internal/timezone"
)

type UpdateAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:  repo,
		audit: audit,
	}
}

// Execute drives the appointment state machine. Cancelling or rejecting
// frees the slot; moving back to an active status re-occupies it, which
// fails with a conflict if someone else took the slot in the meantime.
func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	id uint,
	newStatus string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	to := domain.Status(strings.ToUpper(newStatus))
	effect, err := domain.ApplyStatus(ap, to, timezone.Now())
	if err != nil {
		return nil, err
	}

	var releaseSlotID, occupySlotID *uint
	if ap.SlotID != nil {
		switch effect {
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
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"status": string(to)},
	})

	return uc.repo.GetAppointment(ctx, ap.ID)
}
