package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/clinicsched/medical-scheduler/internal/domain/scheduling"
	"github.com/clinicsched/medical-scheduler/internal/httperr"
	"github.com/clinicsched/medical-scheduler/internal/models"
)

// Statuses that hold a slot. Kept as strings to match the column.
var activeStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusAccepted),
}

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// lockForUpdate adds SELECT .. FOR UPDATE where the dialect supports it.
// SQLite (used in tests) serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// --------------------------------------------------
// Collaborators
// --------------------------------------------------

func (r *SchedulingGormRepository) DoctorExists(
	ctx context.Context,
	id uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SchedulingGormRepository) PatientExists(
	ctx context.Context,
	id uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Availability windows
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(w).Error
}

func (r *SchedulingGormRepository) SaveWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(w).Error
}

func (r *SchedulingGormRepository) GetWindow(
	ctx context.Context,
	id uint,
) (*models.AvailabilityWindow, error) {

	var w models.AvailabilityWindow
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *SchedulingGormRepository) GetWindowWithSlots(
	ctx context.Context,
	id uint,
) (*models.AvailabilityWindow, error) {

	var w models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *SchedulingGormRepository) ListWindows(
	ctx context.Context,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Where("available = ?", true).Order("start_time ASC")
		}).
		Order("day_of_week ASC").
		Order("start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *SchedulingGormRepository) ListWindowsByDoctor(
	ctx context.Context,
	doctorID uint,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Where("available = ?", true).Order("start_time ASC")
		}).
		Where("doctor_id = ? AND active = ?", doctorID, true).
		Order("day_of_week ASC").
		Order("start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

// HasOverlappingWindow checks the three overlap cases against the doctor's
// other active windows on the same weekday: the new range starting inside an
// existing one, ending inside one, or fully containing one.
func (r *SchedulingGormRepository) HasOverlappingWindow(
	ctx context.Context,
	doctorID uint,
	day domain.DayOfWeek,
	start time.Time,
	end time.Time,
	excludeWindowID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.AvailabilityWindow{}).
		Where("doctor_id = ? AND day_of_week = ? AND active = ?", doctorID, string(day), true).
		Where(
			"(start_time <= ? AND end_time > ?) OR (start_time < ? AND end_time >= ?) OR (start_time >= ? AND end_time <= ?)",
			start, start,
			end, end,
			start, end,
		)

	if excludeWindowID != 0 {
		q = q.Where("id <> ?", excludeWindowID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SchedulingGormRepository) UpdateWindowReplacingSlots(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {

	duration := time.Duration(w.SlotDurationMin) * time.Minute
	ranges := domain.ComputeSlots(w.StartTime, w.EndTime, duration)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		active, err := countActiveForWindow(tx, w.ID)
		if err != nil {
			return err
		}
		if active > 0 {
			return httperr.ErrConflict("window_has_active_appointments")
		}

		if err := tx.Omit(clause.Associations).Save(w).Error; err != nil {
			return err
		}

		if err := tx.Where("window_id = ?", w.ID).Delete(&models.Slot{}).Error; err != nil {
			return err
		}

		if len(ranges) == 0 {
			return nil
		}

		slots := make([]models.Slot, 0, len(ranges))
		for _, sr := range ranges {
			slots = append(slots, models.Slot{
				WindowID:  w.ID,
				StartTime: sr.Start,
				EndTime:   sr.End,
				Available: true,
			})
		}

		return tx.Create(&slots).Error
	})
}

func (r *SchedulingGormRepository) DeleteWindow(
	ctx context.Context,
	id uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		active, err := countActiveForWindow(tx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return httperr.ErrConflict("window_has_active_appointments")
		}

		if err := tx.Where("window_id = ?", id).Delete(&models.Slot{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.AvailabilityWindow{}, id).Error
	})
}

func (r *SchedulingGormRepository) CountActiveAppointmentsForWindow(
	ctx context.Context,
	windowID uint,
) (int64, error) {
	return countActiveForWindow(r.db.WithContext(ctx), windowID)
}

func countActiveForWindow(tx *gorm.DB, windowID uint) (int64, error) {
	var count int64
	err := tx.
		Model(&models.Appointment{}).
		Joins("JOIN slots ON slots.id = appointments.slot_id").
		Where("slots.window_id = ? AND appointments.status IN ?", windowID, activeStatuses).
		Count(&count).Error
	return count, err
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *SchedulingGormRepository) RegenerateSlots(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {

	duration := time.Duration(w.SlotDurationMin) * time.Minute
	ranges := domain.ComputeSlots(w.StartTime, w.EndTime, duration)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		active, err := countActiveForWindow(tx, w.ID)
		if err != nil {
			return err
		}
		if active > 0 {
			return httperr.ErrConflict("window_has_active_appointments")
		}

		if err := tx.Where("window_id = ?", w.ID).Delete(&models.Slot{}).Error; err != nil {
			return err
		}

		if len(ranges) == 0 {
			return nil
		}

		slots := make([]models.Slot, 0, len(ranges))
		for _, sr := range ranges {
			slots = append(slots, models.Slot{
				WindowID:  w.ID,
				StartTime: sr.Start,
				EndTime:   sr.End,
				Available: true,
			})
		}

		return tx.Create(&slots).Error
	})
}

func (r *SchedulingGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.Slot, error) {

	var slot models.Slot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SchedulingGormRepository) GetSlotWithWindow(
	ctx context.Context,
	id uint,
) (*models.Slot, error) {

	var slot models.Slot
	if err := r.db.WithContext(ctx).
		Preload("Window").
		First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SchedulingGormRepository) FindAvailableSlots(
	ctx context.Context,
	filter domain.SlotFilter,
) ([]models.Slot, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("slots.available = ?", true)

	if filter.DoctorID != 0 {
		q = q.
			Joins("JOIN availability_windows ON availability_windows.id = slots.window_id").
			Where("availability_windows.doctor_id = ?", filter.DoctorID)
	}

	if !filter.From.IsZero() {
		q = q.Where("slots.start_time >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("slots.start_time <= ?", filter.To)
	}

	var slots []models.Slot
	if err := q.Order("slots.start_time ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SchedulingGormRepository) CountActiveAppointmentsForSlot(
	ctx context.Context,
	slotID uint,
	excludeAppointmentID uint,
) (int64, error) {
	return countActiveForSlot(r.db.WithContext(ctx), slotID, excludeAppointmentID)
}

func countActiveForSlot(tx *gorm.DB, slotID uint, excludeAppointmentID uint) (int64, error) {
	q := tx.
		Model(&models.Appointment{}).
		Where("slot_id = ? AND status IN ?", slotID, activeStatuses)

	if excludeAppointmentID != 0 {
		q = q.Where("id <> ?", excludeAppointmentID)
	}

	var count int64
	err := q.Count(&count).Error
	return count, err
}

// occupySlot re-checks eligibility under a row lock and flips the slot.
// Called only inside a transaction.
func occupySlot(tx *gorm.DB, slotID uint, excludeAppointmentID uint) error {
	var slot models.Slot
	if err := lockForUpdate(tx).First(&slot, slotID).Error; err != nil {
		return err
	}

	if !slot.Available {
		return httperr.ErrConflict("slot_unavailable")
	}

	active, err := countActiveForSlot(tx, slotID, excludeAppointmentID)
	if err != nil {
		return err
	}
	if active > 0 {
		return httperr.ErrConflict("slot_unavailable")
	}

	return tx.Model(&models.Slot{}).
		Where("id = ?", slotID).
		Update("available", false).Error
}

func releaseSlot(tx *gorm.DB, slotID uint) error {
	return tx.Model(&models.Slot{}).
		Where("id = ?", slotID).
		Update("available", true).Error
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateAppointmentOccupying(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ap.SlotID != nil && domain.Status(ap.Status).Active() {
			if err := occupySlot(tx, *ap.SlotID, 0); err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Create(ap).Error
	})
}

func (r *SchedulingGormRepository) SaveAppointmentSwapping(
	ctx context.Context,
	ap *models.Appointment,
	releaseSlotID *uint,
	occupySlotID *uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if releaseSlotID != nil {
			if err := releaseSlot(tx, *releaseSlotID); err != nil {
				return err
			}
		}

		if occupySlotID != nil {
			if err := occupySlot(tx, *occupySlotID, ap.ID); err != nil {
				return err
			}
		}

		return tx.Omit(clause.Associations).Save(ap).Error
	})
}

func (r *SchedulingGormRepository) DeleteAppointmentReleasing(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Appointment{}, ap.ID).Error; err != nil {
			return err
		}

		// The slot is only freed if this appointment was the one holding it.
		if ap.SlotID != nil && domain.Status(ap.Status).Active() {
			return releaseSlot(tx, *ap.SlotID)
		}
		return nil
	})
}

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Preload("Slot").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) ListAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {
	return r.listAppointments(ctx, "")
}

func (r *SchedulingGormRepository) ListAppointmentsByDoctor(
	ctx context.Context,
	doctorID uint,
) ([]models.Appointment, error) {
	return r.listAppointments(ctx, "doctor_id = ?", doctorID)
}

func (r *SchedulingGormRepository) ListAppointmentsByPatient(
	ctx context.Context,
	patientID uint,
) ([]models.Appointment, error) {
	return r.listAppointments(ctx, "patient_id = ?", patientID)
}

func (r *SchedulingGormRepository) listAppointments(
	ctx context.Context,
	cond string,
	args ...any,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Preload("Slot")

	if cond != "" {
		q = q.Where(cond, args...)
	}

	var apps []models.Appointment
	if err := q.Order("scheduled_at ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *SchedulingGormRepository) PatientHasActiveAppointment(
	ctx context.Context,
	patientID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("patient_id = ? AND status IN ?", patientID, activeStatuses).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
