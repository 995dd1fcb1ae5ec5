package dto

import (
	"time"

	"github.com/corvobarber/agenda-api/internal/models"
)

type AppointmentListDTO struct {
	PublicID    string    `json:"public_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		PublicID:    ap.PublicID,
		StartTime:   ap.StartTime,
		EndTime:     ap.EndTime,
		Status:      ap.Status,
		ClientName:  ap.Client.Name,
		ServiceName: ap.Service.Name,
	}
}
