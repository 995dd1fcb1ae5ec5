package appointment

import "github.com/corvobarber/agenda-api/internal/models"

// FilterConflicts remove os slots que intersectam um agendamento ativo
// (pending/confirmed). Intervalos semiabertos: encostar na borda não é
// conflito. A ordem de entrada é preservada.
func FilterConflicts(slots []Slot, appointments []models.Appointment) []Slot {
	free := make([]Slot, 0, len(slots))

	for _, slot := range slots {
		if !overlapsAny(slot, appointments) {
			free = append(free, slot)
		}
	}

	return free
}

func overlapsAny(slot Slot, appointments []models.Appointment) bool {
	slotEnd := slot.End()

	for _, ap := range appointments {
		if !IsBlocking(Status(ap.Status)) {
			continue
		}
		if slot.Start.Before(ap.EndTime) && ap.StartTime.Before(slotEnd) {
			return true
		}
	}

	return false
}
