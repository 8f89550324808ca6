package slot

import (
	"context"
	"time"

	domain "github.com/clinicsched/medical-scheduler/internal/domain/scheduling"
	"github.com/clinicsched/medical-scheduler/internal/models"
	"github.com/clinicsched/medical-scheduler/internal/timezone"
)

type FindAvailableInput struct {
	DoctorID uint
	From     time.Time
	To       time.Time
}

type FindAvailableSlots struct {
	repo domain.Repository
}

func NewFindAvailableSlots(repo domain.Repository) *FindAvailableSlots {
	return &FindAvailableSlots{repo: repo}
}

// Execute lists free slots ordered by start time. A From without a To means
// the whole calendar day containing From.
func (uc *FindAvailableSlots) Execute(
	ctx context.Context,
	in FindAvailableInput,
) ([]models.Slot, error) {

	from, to := in.From, in.To
	if !from.IsZero() && to.IsZero() {
		from, to = timezone.DayBounds(from)
	}

	return uc.repo.FindAvailableSlots(ctx, domain.SlotFilter{
		DoctorID: in.DoctorID,
		From:     from,
		To:       to,
	})
}
