package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/corvobarber/agenda-api/internal/audit"
	domain "github.com/corvobarber/agenda-api/internal/domain/appointment"
	"github.com/corvobarber/agenda-api/internal/httperr"
	"github.com/corvobarber/agenda-api/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

// TemplateHandler é a fronteira com o tooling de admin: toda
// atualização de template passa pela validação antes de persistir.
type TemplateHandler struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTemplateHandler(repo domain.Repository, auditDispatcher *audit.Dispatcher) *TemplateHandler {
	return &TemplateHandler{
		repo:  repo,
		audit: auditDispatcher,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type TemplateDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Available bool   `json:"available"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type TemplateUpdateRequest struct {
	Days []TemplateDayConfig `json:"days" binding:"required"`
}

// ======================================================
// GET / UPDATE
// ======================================================

func (h *TemplateHandler) Get(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	tmpl, err := h.repo.GetTemplate(c.Request.Context(), uint(barberID))
	if err != nil {
		httperr.NotFound(c, httperr.CodeTemplateNotFound, "Template não encontrado.")
		return
	}

	httpresp.OK(c, tmpl)
}

func (h *TemplateHandler) Update(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	var req TemplateUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	tmpl := make(domain.WeekTemplate, 0, len(req.Days))
	for _, d := range req.Days {
		tmpl = append(tmpl, domain.TemplateDay{
			Weekday:   time.Weekday(d.Weekday),
			Available: d.Available,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	if err := domain.ValidateTemplate(tmpl); err != nil {
		writeScheduleError(c, err)
		return
	}

	if err := h.repo.ReplaceTemplate(c.Request.Context(), uint(barberID), tmpl); err != nil {
		httperr.Internal(c, "failed_to_save_template", "Erro ao salvar template.")
		return
	}

	id := uint(barberID)
	h.audit.Dispatch(audit.Event{
		BarberID: &id,
		Action:   "template_updated",
		Entity:   "working_hours",
	})

	httpresp.OK(c, gin.H{"status": "ok"})
}
