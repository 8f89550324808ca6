package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicsched/medical-scheduler/internal/httperr"
	"github.com/clinicsched/medical-scheduler/internal/httpresp"
	ucAppointment "github.com/clinicsched/medical-scheduler/internal/usecase/appointment"
)

type AppointmentHandler struct {
	createUC       *ucAppointment.CreateAppointment
	updateUC       *ucAppointment.UpdateAppointment
	updateStatusUC *ucAppointment.UpdateAppointmentStatus
	removeUC       *ucAppointment.RemoveAppointment
	queries        *ucAppointment.AppointmentQueries
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	updateStatusUC *ucAppointment.UpdateAppointmentStatus,
	removeUC *ucAppointment.RemoveAppointment,
	queries *ucAppointment.AppointmentQueries,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		updateUC:       updateUC,
		updateStatusUC: updateStatusUC,
		removeUC:       removeUC,
		queries:        queries,
	}
}

type CreateAppointmentRequest struct {
	PatientID   uint      `json:"patient_id" binding:"required"`
	DoctorID    uint      `json:"doctor_id" binding:"required"`
	SlotID      uint      `json:"slot_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		SlotID:      req.SlotID,
		ScheduledAt: req.ScheduledAt,
		Status:      req.Status,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	apps, err := h.queries.ListAll(c.Request.Context())
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, apps)
}

func (h *AppointmentHandler) GetByID(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "id must be a number")
		return
	}

	ap, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ListByDoctor(c *gin.Context) {
	doctorID, ok := uintParam(c, "doctorId")
	if !ok {
		httperr.BadRequest(c, "invalid_doctor_id", "doctor id must be a number")
		return
	}

	apps, err := h.queries.ListByDoctor(c.Request.Context(), doctorID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, apps)
}

func (h *AppointmentHandler) ListByPatient(c *gin.Context) {
	patientID, ok := uintParam(c, "patientId")
	if !ok {
		httperr.BadRequest(c, "invalid_patient_id", "patient id must be a number")
		return
	}

	apps, err := h.queries.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, apps)
}

type UpdateAppointmentRequest struct {
	PatientID   *uint      `json:"patient_id"`
	SlotID      *uint      `json:"slot_id"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Status      *string    `json:"status"`
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "id must be a number")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), id, ucAppointment.UpdateAppointmentInput{
		PatientID:   req.PatientID,
		SlotID:      req.SlotID,
		ScheduledAt: req.ScheduledAt,
		Status:      req.Status,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "id must be a number")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.updateStatusUC.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "id must be a number")
		return
	}

	if err := h.removeUC.Execute(c.Request.Context(), id); err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"status": "deleted"})
}
