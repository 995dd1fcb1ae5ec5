package appointment

import (
	"time"

	"github.com/corvobarber/agenda-api/internal/httperr"
	"github.com/corvobarber/agenda-api/internal/models"
)

// ===============================
// Weekly Template
// ===============================

// TemplateDay é a janela de expediente de um dia da semana.
// Horários são wall-clock "15:04"; quando Available é false a janela
// inteira é ignorada.
type TemplateDay struct {
	Weekday   time.Weekday `json:"weekday"`
	Available bool         `json:"available"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
}

// WeekTemplate é o template semanal completo de um barbeiro:
// exatamente uma entrada por dia da semana.
type WeekTemplate []TemplateDay

func (t WeekTemplate) Day(wd time.Weekday) (TemplateDay, bool) {
	for _, d := range t {
		if d.Weekday == wd {
			return d, true
		}
	}
	return TemplateDay{}, false
}

// TemplateFromModels monta o template a partir das linhas persistidas,
// na ordem domingo..sábado.
func TemplateFromModels(rows []models.WorkingHours) WeekTemplate {
	tmpl := make(WeekTemplate, 0, len(rows))
	for _, r := range rows {
		tmpl = append(tmpl, TemplateDay{
			Weekday:   time.Weekday(r.Weekday),
			Available: r.Active,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		})
	}
	return tmpl
}

// ValidateTemplate roda em toda atualização de template vinda do admin.
// O scheduler nunca aceita um template que não passou por aqui.
func ValidateTemplate(t WeekTemplate) error {
	if len(t) != 7 {
		return httperr.ErrBusiness(httperr.CodeInvalidRange)
	}

	var seen [7]bool
	for _, d := range t {
		if d.Weekday < time.Sunday || d.Weekday > time.Saturday {
			return httperr.ErrBusiness(httperr.CodeInvalidRange)
		}
		if seen[d.Weekday] {
			return httperr.ErrBusiness(httperr.CodeInvalidRange)
		}
		seen[d.Weekday] = true

		if !d.Available {
			continue
		}

		start, err := parseWall(d.StartTime)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeInvalidRange)
		}
		end, err := parseWall(d.EndTime)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeInvalidRange)
		}
		if !start.Before(end) {
			return httperr.ErrBusiness(httperr.CodeInvalidRange)
		}
	}

	return nil
}

func parseWall(hm string) (time.Time, error) {
	return time.Parse("15:04", hm)
}

// atDate projeta um horário "15:04" sobre a data alvo, no fuso da data.
func atDate(hm string, date time.Time) time.Time {
	t, _ := parseWall(hm)
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}
