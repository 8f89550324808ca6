package scheduling

import (
	"testing"
	"time"

	"github.com/clinicsched/medical-scheduler/internal/httperr"
)

func TestComputeSlots_ExactFit(t *testing.T) {
	start := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

	slots := ComputeSlots(start, end, 30*time.Minute)
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}

	expected := []string{"08:00", "08:30", "09:00", "09:30"}
	for i, s := range slots {
		if s.Start.Format("15:04") != expected[i] {
			t.Fatalf("slot %d: expected start %s, got %s", i, expected[i], s.Start.Format("15:04"))
		}
		if !s.End.Equal(s.Start.Add(30 * time.Minute)) {
			t.Fatalf("slot %d: end is not start+duration", i)
		}
	}
}

func TestComputeSlots_CountIsFloorOfRange(t *testing.T) {
	cases := []struct {
		rangeMin    int
		durationMin int
		want        int
	}{
		{120, 30, 4},
		{120, 45, 2},
		{125, 30, 4},
		{29, 30, 0},
		{30, 30, 1},
		{240, 240, 1},
	}

	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	for _, tc := range cases {
		end := start.Add(time.Duration(tc.rangeMin) * time.Minute)
		slots := ComputeSlots(start, end, time.Duration(tc.durationMin)*time.Minute)
		if len(slots) != tc.want {
			t.Fatalf("range %dmin / %dmin: expected %d slots, got %d",
				tc.rangeMin, tc.durationMin, tc.want, len(slots))
		}
	}
}

func TestComputeSlots_ContiguousAndBounded(t *testing.T) {
	start := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 3, 12, 10, 0, 0, time.UTC)

	slots := ComputeSlots(start, end, 25*time.Minute)
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}

	for i := 1; i < len(slots); i++ {
		if !slots[i].Start.Equal(slots[i-1].End) {
			t.Fatalf("slot %d does not start where slot %d ends", i, i-1)
		}
	}
	if slots[len(slots)-1].End.After(end) {
		t.Fatal("last slot extends past the window end")
	}
}

func TestComputeSlots_WindowShorterThanDuration(t *testing.T) {
	start := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	if slots := ComputeSlots(start, start.Add(20*time.Minute), 30*time.Minute); len(slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(slots))
	}
}

func TestValidateWindowTiming(t *testing.T) {
	start := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	if err := ValidateWindowTiming(start, end, 30); err != nil {
		t.Fatalf("expected valid timing, got %v", err)
	}

	if err := ValidateWindowTiming(end, start, 30); !httperr.IsBusiness(err, "invalid_time_range") {
		t.Fatalf("expected invalid_time_range, got %v", err)
	}
	if err := ValidateWindowTiming(start, start, 30); !httperr.IsBusiness(err, "invalid_time_range") {
		t.Fatalf("expected invalid_time_range for empty range, got %v", err)
	}
	if err := ValidateWindowTiming(start, end, 4); !httperr.IsBusiness(err, "invalid_slot_duration") {
		t.Fatalf("expected invalid_slot_duration, got %v", err)
	}
	if err := ValidateWindowTiming(start, end, 241); !httperr.IsBusiness(err, "invalid_slot_duration") {
		t.Fatalf("expected invalid_slot_duration, got %v", err)
	}
}
