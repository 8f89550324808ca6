package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/clinicsched/medical-scheduler/internal/audit"
	domain "github.com/clinicsched/medical-scheduler/internal/domain/scheduling"
	"github.com/clinicsched/medical-scheduler/internal/httperr"
	"github.com/clinicsched/medical-scheduler/internal/models"
)

type CreateAppointmentInput struct {
	PatientID   uint
	DoctorID    uint
	SlotID      uint
	ScheduledAt time.Time

	// Optional, defaults to PENDING.
	Status string
}

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	exists, err := uc.repo.PatientExists(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, httperr.ErrNotFound("patient_not_found")
	}

	exists, err = uc.repo.DoctorExists(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, httperr.ErrNotFound("doctor_not_found")
	}

	if in.SlotID == 0 {
		return nil, httperr.ErrValidation("slot_required")
	}

	slot, err := uc.repo.GetSlotWithWindow(ctx, in.SlotID)
	if err != nil {
		return nil, httperr.ErrNotFound("slot_not_found")
	}

	if err := uc.checkEligibility(ctx, slot, 0); err != nil {
		return nil, err
	}

	if slot.Window.DoctorID != in.DoctorID {
		return nil, httperr.ErrValidation("slot_doctor_mismatch")
	}

	scheduledAt := in.ScheduledAt
	if scheduledAt.IsZero() {
		scheduledAt = slot.StartTime
	}
	if scheduledAt.Before(slot.StartTime) || !scheduledAt.Before(slot.EndTime) {
		return nil, httperr.ErrValidation("scheduled_time_outside_slot")
	}

	status := domain.InitialStatus()
	if in.Status != "" {
		status = domain.Status(strings.ToUpper(in.Status))
		if !status.Valid() {
			return nil, httperr.ErrValidation("invalid_status")
		}
	}

	ap := &models.Appointment{
		PatientID:   in.PatientID,
		DoctorID:    in.DoctorID,
		SlotID:      &slot.ID,
		ScheduledAt: scheduledAt,
		Status:      string(status),
	}

	if err := uc.repo.CreateAppointmentOccupying(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.PatientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return uc.repo.GetAppointment(ctx, ap.ID)
}

// checkEligibility runs before the transaction: the slot must be flagged
// available and no non-terminal appointment may hold it. The repository
// repeats the check under a row lock.
func (uc *CreateAppointment) checkEligibility(
	ctx context.Context,
	slot *models.Slot,
	excludeAppointmentID uint,
) error {

	if !slot.Available {
		return httperr.ErrValidation("slot_unavailable")
	}

	active, err := uc.repo.CountActiveAppointmentsForSlot(ctx, slot.ID, excludeAppointmentID)
	if err != nil {
		return err
	}
	if active > 0 {
		return httperr.ErrValidation("slot_unavailable")
	}

	return nil
}
