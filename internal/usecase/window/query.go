package window

import (
	"context"

	domain "github.com/clinicsched/medical-scheduler/internal/domain/scheduling"
	"github.com/clinicsched/medical-scheduler/internal/httperr"
	"github.com/clinicsched/medical-scheduler/internal/models"
)

// WindowQueries bundles the read-only window operations.
type WindowQueries struct {
	repo domain.Repository
}

func NewWindowQueries(repo domain.Repository) *WindowQueries {
	return &WindowQueries{repo: repo}
}

func (uc *WindowQueries) ListAll(ctx context.Context) ([]models.AvailabilityWindow, error) {
	return uc.repo.ListWindows(ctx)
}

func (uc *WindowQueries) ListByDoctor(
	ctx context.Context,
	doctorID uint,
) ([]models.AvailabilityWindow, error) {

	exists, err := uc.repo.DoctorExists(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, httperr.ErrNotFound("doctor_not_found")
	}

	return uc.repo.ListWindowsByDoctor(ctx, doctorID)
}

func (uc *WindowQueries) GetByID(
	ctx context.Context,
	id uint,
) (*models.AvailabilityWindow, error) {

	w, err := uc.repo.GetWindowWithSlots(ctx, id)
	if err != nil {
		return nil, httperr.ErrNotFound("window_not_found")
	}
	return w, nil
}
