package appointment

import (
	"context"

	"github.com/clinicsched/medical-scheduler/internal/audit"
	domain "github.com/clinicsched/medical-scheduler/internal/domain/scheduling"
	"github.com/clinicsched/medical-scheduler/internal/httperr"
)

type RemoveAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRemoveAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RemoveAppointment {
	return &RemoveAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RemoveAppointment) Execute(ctx context.Context, id uint) error {
	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return httperr.ErrNotFound("appointment_not_found")
	}

	if err := uc.repo.DeleteAppointmentReleasing(ctx, ap); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_removed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return nil
}
