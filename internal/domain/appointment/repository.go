package appointment

import (
	"context"
	"time"

	"github.com/corvobarber/agenda-api/internal/models"
)

type Repository interface {
	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Template --------
	GetTemplate(
		ctx context.Context,
		barberID uint,
	) (WeekTemplate, error)

	ReplaceTemplate(
		ctx context.Context,
		barberID uint,
		tmpl WeekTemplate,
	) error

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------

	// InsertIfNoOverlap é o único ponto de sincronização entre reservas
	// concorrentes do mesmo barbeiro: a checagem de sobreposição e o
	// insert acontecem na mesma operação indivisível. Sobreposição com
	// agendamento ativo retorna o erro de negócio slot_conflict.
	InsertIfNoOverlap(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentByPublicID(
		ctx context.Context,
		publicID string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListActiveForDay(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
