package appointment

import (
	"context"
	"time"

	"github.com/corvobarber/agenda-api/internal/audit"
	"github.com/corvobarber/agenda-api/internal/cache"
	domain "github.com/corvobarber/agenda-api/internal/domain/appointment"
	"github.com/corvobarber/agenda-api/internal/httperr"
	"github.com/corvobarber/agenda-api/internal/models"
	"github.com/corvobarber/agenda-api/internal/timezone"
)

type ConfirmBooking struct {
	repo         domain.Repository
	cache        cache.AvailabilityCache
	audit        *audit.Dispatcher
	storeTimeout time.Duration
}

func NewConfirmBooking(
	repo domain.Repository,
	availCache cache.AvailabilityCache,
	auditDispatcher *audit.Dispatcher,
	storeTimeout time.Duration,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:         repo,
		cache:        availCache,
		audit:        auditDispatcher,
		storeTimeout: storeTimeout,
	}
}

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	publicID string,
) (*models.Appointment, error) {

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	ap, err := uc.repo.GetAppointmentByPublicID(ctx, publicID)
	if err != nil {
		return nil, translateStoreErr(err, httperr.CodeBookingNotFound)
	}

	if err := domain.Confirm(ap, timezone.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, translateStoreErr(err, httperr.CodeBookingNotFound)
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: &ap.BarberID,
		Action:   "booking_confirmed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
