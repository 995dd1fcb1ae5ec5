package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/corvobarber/agenda-api/internal/httperr"
	"github.com/corvobarber/agenda-api/internal/httpresp"
	ucAppointment "github.com/corvobarber/agenda-api/internal/usecase/appointment"
	"github.com/corvobarber/agenda-api/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC *ucAppointment.CreateBooking
	tz       string
}

func NewBookingHandler(createUC *ucAppointment.CreateBooking, tz string) *BookingHandler {
	return &BookingHandler{
		createUC: createUC,
		tz:       tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.ClientEmail != "" && !validators.IsEmailDomainValid(req.ClientEmail) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}

	start, err := parseDateTimeInShop(h.tz, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateBookingInput{
			BarberID:    uint(barberID),
			ServiceID:   req.ServiceID,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			Start:       start,
			Notes:       req.Notes,
		},
	)

	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.Created(c, ap)
}
