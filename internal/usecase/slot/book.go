package slot

import (
	"context"

	"github.com/clinicsched/medical-scheduler/internal/audit"
	domain "github.com/clinicsched/medical-scheduler/internal/domain/scheduling"
	"github.com/clinicsched/medical-scheduler/internal/httperr"
	"github.com/clinicsched/medical-scheduler/internal/lock"
	"github.com/clinicsched/medical-scheduler/internal/models"
)

type BookSlotInput struct {
	PatientID uint
	SlotID    uint
}

type BookSlot struct {
	repo   domain.Repository
	locker lock.Locker
	audit  *audit.Dispatcher
}

func NewBookSlot(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
) *BookSlot {
	return &BookSlot{
		repo:   repo,
		locker: locker,
		audit:  audit,
	}
}

// Execute books a slot for a patient as a PENDING appointment at the slot's
// start time. A patient may hold at most one non-terminal appointment. The
// create-and-occupy write runs under the per-slot lock and inside one
// transaction, so of two concurrent attempts exactly one wins.
func (uc *BookSlot) Execute(
	ctx context.Context,
	in BookSlotInput,
) (*models.Appointment, error) {

	exists, err := uc.repo.PatientExists(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, httperr.ErrNotFound("patient_not_found")
	}

	hasActive, err := uc.repo.PatientHasActiveAppointment(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if hasActive {
		return nil, httperr.ErrConflict("active_appointment_exists")
	}

	slot, err := uc.repo.GetSlotWithWindow(ctx, in.SlotID)
	if err != nil {
		return nil, httperr.ErrNotFound("slot_not_found")
	}

	if !slot.Available {
		return nil, httperr.ErrConflict("slot_unavailable")
	}

	ap := &models.Appointment{
		PatientID:   in.PatientID,
		DoctorID:    slot.Window.DoctorID,
		SlotID:      &slot.ID,
		ScheduledAt: slot.StartTime,
		Status:      string(domain.InitialStatus()),
	}

	err = uc.locker.WithSlotLock(ctx, slot.ID, func(ctx context.Context) error {
		return uc.repo.CreateAppointmentOccupying(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.PatientID,
		Action:   "slot_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return uc.repo.GetAppointment(ctx, ap.ID)
}
