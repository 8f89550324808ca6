package appointment

import (
	"context"

	domain "github.com/clinicsched/medical-scheduler/internal/domain/scheduling"
	"github.com/clinicsched/medical-scheduler/internal/httperr"
	"github.com/clinicsched/medical-scheduler/internal/models"
)

// AppointmentQueries bundles the read-only appointment operations. Lists are
// ordered by scheduled time ascending.
type AppointmentQueries struct {
	repo domain.Repository
}

func NewAppointmentQueries(repo domain.Repository) *AppointmentQueries {
	return &AppointmentQueries{repo: repo}
}

func (uc *AppointmentQueries) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return uc.repo.ListAppointments(ctx)
}

func (uc *AppointmentQueries) GetByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	return ap, nil
}

func (uc *AppointmentQueries) ListByDoctor(
	ctx context.Context,
	doctorID uint,
) ([]models.Appointment, error) {

	exists, err := uc.repo.DoctorExists(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, httperr.ErrNotFound("doctor_not_found")
	}

	return uc.repo.ListAppointmentsByDoctor(ctx, doctorID)
}

func (uc *AppointmentQueries) ListByPatient(
	ctx context.Context,
	patientID uint,
) ([]models.Appointment, error) {

	exists, err := uc.repo.PatientExists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, httperr.ErrNotFound("patient_not_found")
	}

	return uc.repo.ListAppointmentsByPatient(ctx, patientID)
}
