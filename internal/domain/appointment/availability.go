package appointment

import "time"

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      time.Time
}

// TimeSlot é a forma de exibição de um Slot.
type TimeSlot struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	DurationMin int    `json:"duration_min"`
}

func (s Slot) ToTimeSlot() TimeSlot {
	return TimeSlot{
		Start:       s.Start.Format("15:04"),
		End:         s.End().Format("15:04"),
		DurationMin: s.DurationMin,
	}
}
