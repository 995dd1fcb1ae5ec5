package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/corvobarber/agenda-api/internal/domain/appointment"
	"github.com/corvobarber/agenda-api/internal/httperr"
	ucAppointment "github.com/corvobarber/agenda-api/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	uc *ucAppointment.GetAvailability
	tz string
}

func NewAvailabilityHandler(uc *ucAppointment.GetAvailability, tz string) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc, tz: tz}
}

// Get responde a agenda livre de um barbeiro para uma data e serviço.
// Lista vazia é resposta normal, não erro.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")
	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	date, err := parseDateInShop(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.uc.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BarberID:  uint(barberID),
			ServiceID: uint(serviceID),
			Date:      date,
		},
	)

	if err != nil {
		writeScheduleError(c, err)
		return
	}

	out := make([]domain.TimeSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.ToTimeSlot())
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": out,
	})
}

// writeScheduleError traduz a taxonomia de negócio do scheduler para
// HTTP. Conflito tem status próprio (409) para o cliente distinguir.
func writeScheduleError(c *gin.Context, err error) {
	switch {
	case httperr.IsNotFound(err):
		code := "not_found"
		var be httperr.BusinessError
		if errors.As(err, &be) {
			code = be.Code
		}
		httperr.NotFound(c, code, "Recurso não encontrado.")

	case httperr.IsBusiness(err, httperr.CodeInvalidSlot):
		httperr.BadRequest(c, httperr.CodeInvalidSlot, "Horário não disponível para reserva.")

	case httperr.IsBusiness(err, httperr.CodeSlotConflict):
		httperr.Conflict(c, httperr.CodeSlotConflict, "Este barbeiro já tem um agendamento nesse horário.")

	case httperr.IsBusiness(err, httperr.CodeStoreTimeout):
		httperr.Timeout(c, httperr.CodeStoreTimeout, "Armazenamento indisponível. Tente novamente.")

	case httperr.IsBusiness(err, httperr.CodeInvalidState):
		httperr.BadRequest(c, httperr.CodeInvalidState, "Transição de status inválida.")

	case httperr.IsBusiness(err, httperr.CodeInvalidRange):
		httperr.BadRequest(c, httperr.CodeInvalidRange, "Template de horários inválido.")

	default:
		httperr.Internal(c, "internal_error", "Erro interno.")
	}
}
