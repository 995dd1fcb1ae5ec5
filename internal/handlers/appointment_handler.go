package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/corvobarber/agenda-api/internal/dto"
	"github.com/corvobarber/agenda-api/internal/httperr"
	"github.com/corvobarber/agenda-api/internal/httpresp"
	ucAppointment "github.com/corvobarber/agenda-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler cobre as transições de status disparadas pelo
// barbeiro/cliente e a listagem da agenda do dia.
type AppointmentHandler struct {
	confirmUC *ucAppointment.ConfirmBooking
	rejectUC  *ucAppointment.RejectBooking
	cancelUC  *ucAppointment.CancelBooking
	listUC    *ucAppointment.ListAppointmentsByDate
	tz        string
}

func NewAppointmentHandler(
	confirmUC *ucAppointment.ConfirmBooking,
	rejectUC *ucAppointment.RejectBooking,
	cancelUC *ucAppointment.CancelBooking,
	listUC *ucAppointment.ListAppointmentsByDate,
	tz string,
) *AppointmentHandler {
	return &AppointmentHandler{
		confirmUC: confirmUC,
		rejectUC:  rejectUC,
		cancelUC:  cancelUC,
		listUC:    listUC,
		tz:        tz,
	}
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	ap, err := h.confirmUC.Execute(c.Request.Context(), c.Param("publicId"))
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reject(c *gin.Context) {
	ap, err := h.rejectUC.Execute(c.Request.Context(), c.Param("publicId"))
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.cancelUC.Execute(c.Request.Context(), c.Param("publicId"))
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDateInShop(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	apps, err := h.listUC.Execute(c.Request.Context(), uint(barberID), date)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.FromAppointment(ap))
	}

	httpresp.List(c, out)
}
