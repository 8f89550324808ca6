package scheduling

import (
	"time"

	"github.com/clinicsched/medical-scheduler/internal/httperr"
)

const (
	MinSlotDurationMin     = 5
	MaxSlotDurationMin     = 240
	DefaultSlotDurationMin = 30
)

type SlotRange struct {
	Start time.Time
	End   time.Time
}

// ComputeSlots partitions [start, end) into contiguous fixed-duration
// ranges. A trailing remainder shorter than one duration is dropped, so a
// window shorter than the duration yields no slots.
func ComputeSlots(start, end time.Time, duration time.Duration) []SlotRange {
	if duration <= 0 {
		return nil
	}

	var slots []SlotRange
	for cur := start; !cur.Add(duration).After(end); cur = cur.Add(duration) {
		slots = append(slots, SlotRange{Start: cur, End: cur.Add(duration)})
	}

	return slots
}

// ValidateWindowTiming checks the invariants a window must satisfy before
// slots can be generated from it.
func ValidateWindowTiming(start, end time.Time, durationMin int) error {
	if !end.After(start) {
		return httperr.ErrValidation("invalid_time_range")
	}
	if durationMin < MinSlotDurationMin || durationMin > MaxSlotDurationMin {
		return httperr.ErrValidation("invalid_slot_duration")
	}
	return nil
}
