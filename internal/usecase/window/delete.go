package window

import (
	"context"

	"github.com/clinicsched/medical-scheduler/internal/audit"
	domain "github.com/clinicsched/medical-scheduler/internal/domain/scheduling"
	"github.com/clinicsched/medical-scheduler/internal/httperr"
)

type DeleteWindow struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteWindow(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteWindow {
	return &DeleteWindow{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteWindow) Execute(ctx context.Context, id uint) error {
	w, err := uc.repo.GetWindow(ctx, id)
	if err != nil {
		return httperr.ErrNotFound("window_not_found")
	}

	if err := uc.repo.DeleteWindow(ctx, w.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "window_deleted",
		Entity:   "availability_window",
		EntityID: &w.ID,
	})

	return nil
}
