package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicsched/medical-scheduler/internal/httperr"
	"github.com/clinicsched/medical-scheduler/internal/httpresp"
	ucSlot "github.com/clinicsched/medical-scheduler/internal/usecase/slot"
)

type SlotHandler struct {
	findAvailableUC *ucSlot.FindAvailableSlots
	bookUC          *ucSlot.BookSlot
}

func NewSlotHandler(
	findAvailableUC *ucSlot.FindAvailableSlots,
	bookUC *ucSlot.BookSlot,
) *SlotHandler {
	return &SlotHandler{
		findAvailableUC: findAvailableUC,
		bookUC:          bookUC,
	}
}

// FindAvailable lists free slots. Query params: doctor_id, from, to. Passing
// only from selects that entire day.
func (h *SlotHandler) FindAvailable(c *gin.Context) {
	from, ok := timeQuery(c, "from")
	if !ok {
		httperr.BadRequest(c, "invalid_from", "from must be an RFC3339 timestamp or a date")
		return
	}
	to, ok := timeQuery(c, "to")
	if !ok {
		httperr.BadRequest(c, "invalid_to", "to must be an RFC3339 timestamp or a date")
		return
	}

	slots, err := h.findAvailableUC.Execute(c.Request.Context(), ucSlot.FindAvailableInput{
		DoctorID: uintQuery(c, "doctor_id"),
		From:     from,
		To:       to,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, slots)
}

type BookSlotRequest struct {
	PatientID uint `json:"patient_id" binding:"required"`
	SlotID    uint `json:"slot_id" binding:"required"`
}

func (h *SlotHandler) Book(c *gin.Context) {
	var req BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), ucSlot.BookSlotInput{
		PatientID: req.PatientID,
		SlotID:    req.SlotID,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.Created(c, ap)
}
