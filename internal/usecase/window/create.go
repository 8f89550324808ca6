package window

import (
	"context"
	"time"

	"github.com/clinicsched/medical-scheduler/internal/audit"
	domain "github.com/clinicsched/medical-scheduler/internal/domain/scheduling"
	"github.com/clinicsched/medical-scheduler/internal/httperr"
	"github.com/clinicsched/medical-scheduler/internal/models"
)

type CreateWindowInput struct {
	DoctorID  uint
	DayOfWeek string
	StartTime time.Time
	EndTime   time.Time

	// Optional, defaulted when nil.
	SlotDurationMin *int
	Active          *bool
}

type CreateWindow struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateWindow(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateWindow {
	return &CreateWindow{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateWindow) Execute(
	ctx context.Context,
	in CreateWindowInput,
) (*models.AvailabilityWindow, error) {

	day, err := domain.ParseDayOfWeek(in.DayOfWeek)
	if err != nil {
		return nil, err
	}

	duration := domain.DefaultSlotDurationMin
	if in.SlotDurationMin != nil {
		duration = *in.SlotDurationMin
	}

	if err := domain.ValidateWindowTiming(in.StartTime, in.EndTime, duration); err != nil {
		return nil, err
	}

	exists, err := uc.repo.DoctorExists(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, httperr.ErrNotFound("doctor_not_found")
	}

	overlap, err := uc.repo.HasOverlappingWindow(
		ctx,
		in.DoctorID,
		day,
		in.StartTime,
		in.EndTime,
		0,
	)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, httperr.ErrConflict("window_overlap")
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	w := &models.AvailabilityWindow{
		DoctorID:        in.DoctorID,
		DayOfWeek:       string(day),
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		SlotDurationMin: duration,
		Active:          active,
	}

	if err := uc.repo.CreateWindow(ctx, w); err != nil {
		return nil, err
	}

	if err := uc.repo.RegenerateSlots(ctx, w); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "window_created",
		Entity:   "availability_window",
		EntityID: &w.ID,
	})

	return uc.repo.GetWindowWithSlots(ctx, w.ID)
}
