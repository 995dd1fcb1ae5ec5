package appointment

import (
	"errors"
	"time"
)

// ErrInvalidDuration é erro de contrato (bug do chamador), não erro de
// negócio: duração não positiva nunca chega aqui por um fluxo válido.
var ErrInvalidDuration = errors.New("slot duration must be positive")

// Slot é um horário candidato, ainda não reservado. Transiente: nunca
// é persistido.
type Slot struct {
	Start       time.Time
	DurationMin int
}

func (s Slot) End() time.Time {
	return s.Start.Add(time.Duration(s.DurationMin) * time.Minute)
}

// GenerateSlots caminha da abertura ao fechamento do dia em passos de
// durationMin, emitindo apenas slots cujo intervalo cabe inteiro na
// janela. O passo parcial final é descartado, nunca encurtado.
//
// Função pura: sem relógio, sem efeitos colaterais. Filtrar horários já
// passados é responsabilidade do orquestrador.
func GenerateSlots(day TemplateDay, date time.Time, durationMin int) ([]Slot, error) {
	if durationMin <= 0 {
		return nil, ErrInvalidDuration
	}

	if !day.Available {
		return []Slot{}, nil
	}

	dayStart := atDate(day.StartTime, date)
	dayEnd := atDate(day.EndTime, date)
	step := time.Duration(durationMin) * time.Minute

	slots := []Slot{}
	for cur := dayStart; !cur.Add(step).After(dayEnd); cur = cur.Add(step) {
		slots = append(slots, Slot{
			Start:       cur,
			DurationMin: durationMin,
		})
	}

	return slots, nil
}
