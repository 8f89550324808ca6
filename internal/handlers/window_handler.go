package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicsched/medical-scheduler/internal/httperr"
	"github.com/clinicsched/medical-scheduler/internal/httpresp"
	ucWindow "github.com/clinicsched/medical-scheduler/internal/usecase/window"
)

type WindowHandler struct {
	createUC *ucWindow.CreateWindow
	updateUC *ucWindow.UpdateWindow
	deleteUC *ucWindow.DeleteWindow
	queries  *ucWindow.WindowQueries
}

func NewWindowHandler(
	createUC *ucWindow.CreateWindow,
	updateUC *ucWindow.UpdateWindow,
	deleteUC *ucWindow.DeleteWindow,
	queries *ucWindow.WindowQueries,
) *WindowHandler {
	return &WindowHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		queries:  queries,
	}
}

type CreateWindowRequest struct {
	DoctorID        uint      `json:"doctor_id" binding:"required"`
	DayOfWeek       string    `json:"day_of_week" binding:"required"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	EndTime         time.Time `json:"end_time" binding:"required"`
	SlotDurationMin *int      `json:"slot_duration_min"`
	Active          *bool     `json:"active"`
}

func (h *WindowHandler) Create(c *gin.Context) {
	var req CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	w, err := h.createUC.Execute(c.Request.Context(), ucWindow.CreateWindowInput{
		DoctorID:        req.DoctorID,
		DayOfWeek:       req.DayOfWeek,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		SlotDurationMin: req.SlotDurationMin,
		Active:          req.Active,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.Created(c, w)
}

func (h *WindowHandler) List(c *gin.Context) {
	windows, err := h.queries.ListAll(c.Request.Context())
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, windows)
}

func (h *WindowHandler) ListByDoctor(c *gin.Context) {
	doctorID, ok := uintParam(c, "doctorId")
	if !ok {
		httperr.BadRequest(c, "invalid_doctor_id", "doctor id must be a number")
		return
	}

	windows, err := h.queries.ListByDoctor(c.Request.Context(), doctorID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, windows)
}

func (h *WindowHandler) GetByID(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "id must be a number")
		return
	}

	w, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, w)
}

type UpdateWindowRequest struct {
	DayOfWeek       *string    `json:"day_of_week"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	SlotDurationMin *int       `json:"slot_duration_min"`
	Active          *bool      `json:"active"`
}

func (h *WindowHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "id must be a number")
		return
	}

	var req UpdateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	w, err := h.updateUC.Execute(c.Request.Context(), id, ucWindow.UpdateWindowInput{
		DayOfWeek:       req.DayOfWeek,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		SlotDurationMin: req.SlotDurationMin,
		Active:          req.Active,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, w)
}

func (h *WindowHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "id must be a number")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"status": "deleted"})
}
