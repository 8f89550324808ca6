package scheduling

import (
	"context"
	"time"

	"github.com/clinicsched/medical-scheduler/internal/models"
)

// SlotFilter narrows an available-slot search. Zero values mean "any".
type SlotFilter struct {
	DoctorID uint
	From     time.Time
	To       time.Time
}

type Repository interface {
	// -------- Collaborators (existence checks only) --------
	DoctorExists(
		ctx context.Context,
		id uint,
	) (bool, error)

	PatientExists(
		ctx context.Context,
		id uint,
	) (bool, error)

	// -------- Availability windows --------
	CreateWindow(
		ctx context.Context,
		w *models.AvailabilityWindow,
	) error

	SaveWindow(
		ctx context.Context,
		w *models.AvailabilityWindow,
	) error

	GetWindow(
		ctx context.Context,
		id uint,
	) (*models.AvailabilityWindow, error)

	GetWindowWithSlots(
		ctx context.Context,
		id uint,
	) (*models.AvailabilityWindow, error)

	ListWindows(
		ctx context.Context,
	) ([]models.AvailabilityWindow, error)

	ListWindowsByDoctor(
		ctx context.Context,
		doctorID uint,
	) ([]models.AvailabilityWindow, error)

	HasOverlappingWindow(
		ctx context.Context,
		doctorID uint,
		day DayOfWeek,
		start time.Time,
		end time.Time,
		excludeWindowID uint,
	) (bool, error)

	// UpdateWindowReplacingSlots saves the window and rebuilds its slots in
	// one transaction. Refuses while any non-terminal appointment holds one
	// of the old slots.
	UpdateWindowReplacingSlots(
		ctx context.Context,
		w *models.AvailabilityWindow,
	) error

	// DeleteWindow removes the window and its slots in one transaction,
	// refusing while any non-terminal appointment holds one of the slots.
	DeleteWindow(
		ctx context.Context,
		id uint,
	) error

	CountActiveAppointmentsForWindow(
		ctx context.Context,
		windowID uint,
	) (int64, error)

	// -------- Slots --------

	// RegenerateSlots replaces every slot of the window with freshly
	// computed ones inside one transaction. Refuses while any non-terminal
	// appointment holds one of the old slots.
	RegenerateSlots(
		ctx context.Context,
		w *models.AvailabilityWindow,
	) error

	GetSlot(
		ctx context.Context,
		id uint,
	) (*models.Slot, error)

	GetSlotWithWindow(
		ctx context.Context,
		id uint,
	) (*models.Slot, error)

	FindAvailableSlots(
		ctx context.Context,
		filter SlotFilter,
	) ([]models.Slot, error)

	CountActiveAppointmentsForSlot(
		ctx context.Context,
		slotID uint,
		excludeAppointmentID uint,
	) (int64, error)

	// -------- Appointments --------

	// CreateAppointmentOccupying creates the appointment and flips its slot
	// to unavailable in one transaction, re-checking eligibility under a row
	// lock so that concurrent bookings of the same slot serialize.
	CreateAppointmentOccupying(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// SaveAppointmentSwapping persists the appointment and applies the given
	// slot release/occupy in the same transaction. The occupy side re-checks
	// eligibility under a row lock.
	SaveAppointmentSwapping(
		ctx context.Context,
		ap *models.Appointment,
		releaseSlotID *uint,
		occupySlotID *uint,
	) error

	DeleteAppointmentReleasing(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)

	ListAppointmentsByDoctor(
		ctx context.Context,
		doctorID uint,
	) ([]models.Appointment, error)

	ListAppointmentsByPatient(
		ctx context.Context,
		patientID uint,
	) ([]models.Appointment, error)

	PatientHasActiveAppointment(
		ctx context.Context,
		patientID uint,
	) (bool, error)
}
