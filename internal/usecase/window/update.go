package window

import (
	"context"
	"time"

	"github.com/clinicsched/medical-scheduler/internal/audit"
	domain "github.com/clinicsched/medical-scheduler/internal/domain/scheduling"
	"github.com/clinicsched/medical-scheduler/internal/httperr"
	"github.com/clinicsched/medical-scheduler/internal/models"
)

type UpdateWindowInput struct {
	DayOfWeek       *string
	StartTime       *time.Time
	EndTime         *time.Time
	SlotDurationMin *int
	Active          *bool
}

type UpdateWindow struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateWindow(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateWindow {
	return &UpdateWindow{
		repo:  repo,
		audit: audit,
	}
}

// Execute applies a partial update. A change to the timing or the slot
// duration rebuilds every slot of the window, which is refused while any
// non-terminal appointment still holds one of them.
func (uc *UpdateWindow) Execute(
	ctx context.Context,
	id uint,
	in UpdateWindowInput,
) (*models.AvailabilityWindow, error) {

	w, err := uc.repo.GetWindow(ctx, id)
	if err != nil {
		return nil, httperr.ErrNotFound("window_not_found")
	}

	if in.DayOfWeek != nil {
		day, err := domain.ParseDayOfWeek(*in.DayOfWeek)
		if err != nil {
			return nil, err
		}
		w.DayOfWeek = string(day)
	}

	timingChanged := false
	if in.StartTime != nil {
		w.StartTime = *in.StartTime
		timingChanged = true
	}
	if in.EndTime != nil {
		w.EndTime = *in.EndTime
		timingChanged = true
	}
	if in.SlotDurationMin != nil {
		w.SlotDurationMin = *in.SlotDurationMin
		timingChanged = true
	}
	if in.Active != nil {
		w.Active = *in.Active
	}

	if err := domain.ValidateWindowTiming(w.StartTime, w.EndTime, w.SlotDurationMin); err != nil {
		return nil, err
	}

	if w.Active {
		overlap, err := uc.repo.HasOverlappingWindow(
			ctx,
			w.DoctorID,
			domain.DayOfWeek(w.DayOfWeek),
			w.StartTime,
			w.EndTime,
			w.ID,
		)
		if err != nil {
			return nil, err
		}
		if overlap {
			return nil, httperr.ErrConflict("window_overlap")
		}
	}

	if timingChanged {
		err = uc.repo.UpdateWindowReplacingSlots(ctx, w)
	} else {
		err = uc.repo.SaveWindow(ctx, w)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "window_updated",
		Entity:   "availability_window",
		EntityID: &w.ID,
	})

	return uc.repo.GetWindowWithSlots(ctx, w.ID)
}
