package slot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clinicsched/medical-scheduler/internal/audit"
	domain "github.com/clinicsched/medical-scheduler/internal/domain/scheduling"
	"github.com/clinicsched/medical-scheduler/internal/httperr"
	infraRepo "github.com/clinicsched/medical-scheduler/internal/infra/repository"
	"github.com/clinicsched/medical-scheduler/internal/lock"
	"github.com/clinicsched/medical-scheduler/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Doctor{},
		&models.Patient{},
		&models.AvailabilityWindow{},
		&models.Slot{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

type testEnv struct {
	db        *gorm.DB
	repo      *infraRepo.SchedulingGormRepository
	findUC    *FindAvailableSlots
	bookUC    *BookSlot
	doctorID  uint
	patientID uint
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	repo := infraRepo.NewSchedulingGormRepository(db)
	disp := audit.NewDispatcher(audit.New(db))

	doctor := models.Doctor{Name: "Dr. Salas", Email: "salas@clinic.test"}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	patient := models.Patient{Name: "Elena", Email: "elena@clinic.test"}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}

	return &testEnv{
		db:        db,
		repo:      repo,
		findUC:    NewFindAvailableSlots(repo),
		bookUC:    NewBookSlot(repo, lock.NewNoopLocker(), disp),
		doctorID:  doctor.ID,
		patientID: patient.ID,
	}
}

func (e *testEnv) seedWindow(t *testing.T, doctorID uint, day time.Time) *models.AvailabilityWindow {
	t.Helper()
	ctx := context.Background()

	w := &models.AvailabilityWindow{
		DoctorID:        doctorID,
		DayOfWeek:       string(domain.DayOfWeekFromTime(day)),
		StartTime:       day.Add(8 * time.Hour),
		EndTime:         day.Add(10 * time.Hour),
		SlotDurationMin: 30,
		Active:          true,
	}
	if err := e.repo.CreateWindow(ctx, w); err != nil {
		t.Fatalf("create window: %v", err)
	}
	if err := e.repo.RegenerateSlots(ctx, w); err != nil {
		t.Fatalf("generate slots: %v", err)
	}

	full, err := e.repo.GetWindowWithSlots(ctx, w.ID)
	if err != nil {
		t.Fatalf("reload window: %v", err)
	}
	return full
}

func TestBookSlot_CreatesPendingAppointment(t *testing.T) {
	env := newTestEnv(t)
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	w := env.seedWindow(t, env.doctorID, day)
	slot := w.Slots[0]

	ap, err := env.bookUC.Execute(context.Background(), BookSlotInput{
		PatientID: env.patientID,
		SlotID:    slot.ID,
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if ap.Status != string(domain.StatusPending) {
		t.Fatalf("expected PENDING, got %s", ap.Status)
	}
	if ap.DoctorID != env.doctorID {
		t.Fatal("doctor should come from the slot's window")
	}
	if !ap.ScheduledAt.Equal(slot.StartTime) {
		t.Fatal("booking schedules at the slot start")
	}

	var s models.Slot
	if err := env.db.First(&s, slot.ID).Error; err != nil {
		t.Fatalf("reload slot: %v", err)
	}
	if s.Available {
		t.Fatal("booked slot should be unavailable")
	}
}

func TestBookSlot_SecondAttemptFails(t *testing.T) {
	env := newTestEnv(t)
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	w := env.seedWindow(t, env.doctorID, day)
	slot := w.Slots[0]
	ctx := context.Background()

	if _, err := env.bookUC.Execute(ctx, BookSlotInput{
		PatientID: env.patientID,
		SlotID:    slot.ID,
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	other := models.Patient{Name: "Raul", Email: "raul@clinic.test"}
	if err := env.db.Create(&other).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}

	_, err := env.bookUC.Execute(ctx, BookSlotInput{
		PatientID: other.ID,
		SlotID:    slot.ID,
	})
	if !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
}

func TestBookSlot_PatientWithActiveAppointmentBlocked(t *testing.T) {
	env := newTestEnv(t)
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	w := env.seedWindow(t, env.doctorID, day)
	ctx := context.Background()

	if _, err := env.bookUC.Execute(ctx, BookSlotInput{
		PatientID: env.patientID,
		SlotID:    w.Slots[0].ID,
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := env.bookUC.Execute(ctx, BookSlotInput{
		PatientID: env.patientID,
		SlotID:    w.Slots[1].ID,
	})
	if !httperr.IsBusiness(err, "active_appointment_exists") {
		t.Fatalf("expected active_appointment_exists, got %v", err)
	}
}

func TestBookSlot_UnknownReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.bookUC.Execute(ctx, BookSlotInput{PatientID: 999, SlotID: 1})
	if !httperr.IsBusiness(err, "patient_not_found") {
		t.Fatalf("expected patient_not_found, got %v", err)
	}

	_, err = env.bookUC.Execute(ctx, BookSlotInput{PatientID: env.patientID, SlotID: 999})
	if !httperr.IsBusiness(err, "slot_not_found") {
		t.Fatalf("expected slot_not_found, got %v", err)
	}
}

func TestFindAvailableSlots_FromOnlyMeansWholeDay(t *testing.T) {
	env := newTestEnv(t)
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	env.seedWindow(t, env.doctorID, monday)
	env.seedWindow(t, env.doctorID, tuesday)
	ctx := context.Background()

	slots, err := env.findUC.Execute(ctx, FindAvailableInput{
		From: monday.Add(6 * time.Hour),
	})
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	if len(slots) != 4 {
		t.Fatalf("expected the 4 Monday slots, got %d", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].StartTime.Before(slots[i-1].StartTime) {
			t.Fatal("slots should be ordered by start time")
		}
	}
}

func TestFindAvailableSlots_FiltersByDoctorAndHidesBooked(t *testing.T) {
	env := newTestEnv(t)
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	w := env.seedWindow(t, env.doctorID, monday)

	other := models.Doctor{Name: "Dr. Pardo", Email: "pardo@clinic.test"}
	if err := env.db.Create(&other).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	env.seedWindow(t, other.ID, monday)
	ctx := context.Background()

	if _, err := env.bookUC.Execute(ctx, BookSlotInput{
		PatientID: env.patientID,
		SlotID:    w.Slots[0].ID,
	}); err != nil {
		t.Fatalf("book: %v", err)
	}

	slots, err := env.findUC.Execute(ctx, FindAvailableInput{
		DoctorID: env.doctorID,
		From:     monday,
		To:       monday.AddDate(0, 0, 7),
	})
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	if len(slots) != 3 {
		t.Fatalf("expected 3 free slots for the doctor, got %d", len(slots))
	}
	for _, s := range slots {
		if s.ID == w.Slots[0].ID {
			t.Fatal("booked slot must not be listed")
		}
	}
}
