package scheduling

import "github.com/clinicsched/medical-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusCancelled Status = "CANCELLED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
)

// SlotEffect is what a status transition does to the bound slot.
type SlotEffect int

const (
	EffectNone SlotEffect = iota
	EffectRelease
	EffectOccupy
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusCancelled, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Active statuses are the ones that hold a slot.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusAccepted
}

func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusRejected || s == StatusCompleted
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Transitions
// ===============================

// Transition validates a status change and reports the slot side effect the
// caller must apply in the same transaction as the status write.
func Transition(from, to Status) (SlotEffect, error) {
	if !from.Valid() || !to.Valid() {
		return EffectNone, httperr.ErrValidation("invalid_status")
	}

	if from == to {
		return EffectNone, nil
	}

	if from == StatusCompleted {
		return EffectNone, httperr.ErrConflict("invalid_state")
	}

	if from.Active() {
		switch {
		case to.Active():
			return EffectNone, nil
		case to == StatusCancelled || to == StatusRejected:
			return EffectRelease, nil
		case to == StatusCompleted:
			if from != StatusAccepted {
				return EffectNone, httperr.ErrConflict("invalid_state")
			}
			return EffectRelease, nil
		}
	}

	// from CANCELLED / REJECTED
	switch {
	case to.Active():
		return EffectOccupy, nil
	case to == StatusCancelled || to == StatusRejected:
		return EffectNone, nil
	}

	return EffectNone, httperr.ErrConflict("invalid_state")
}
