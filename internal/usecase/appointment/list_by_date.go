package appointment

import (
	"context"
	"time"

	domain "github.com/corvobarber/agenda-api/internal/domain/appointment"
	"github.com/corvobarber/agenda-api/internal/httperr"
	"github.com/corvobarber/agenda-api/internal/models"
)

type ListAppointmentsByDate struct {
	repo         domain.Repository
	storeTimeout time.Duration
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	storeTimeout time.Duration,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo:         repo,
		storeTimeout: storeTimeout,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]models.Appointment, error) {

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, translateStoreErr(err, httperr.CodeBarberNotFound)
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	apps, err := uc.repo.ListForPeriod(ctx, barberID, start, end)
	if err != nil {
		return nil, translateStoreErr(err, httperr.CodeBarberNotFound)
	}

	return apps, nil
}
