package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/corvobarber/agenda-api/internal/audit"
	"github.com/corvobarber/agenda-api/internal/cache"
	domain "github.com/corvobarber/agenda-api/internal/domain/appointment"
	"github.com/corvobarber/agenda-api/internal/httperr"
	"github.com/corvobarber/agenda-api/internal/metrics"
	"github.com/corvobarber/agenda-api/internal/models"
	"github.com/corvobarber/agenda-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BarberID  uint
	ServiceID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Start time.Time
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	cache cache.AvailabilityCache
	audit *audit.Dispatcher

	minAdvance   time.Duration
	storeTimeout time.Duration

	now func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	availCache cache.AvailabilityCache,
	auditDispatcher *audit.Dispatcher,
	minAdvanceMinutes int,
	storeTimeout time.Duration,
) *CreateBooking {
	return &CreateBooking{
		repo:         repo,
		cache:        availCache,
		audit:        auditDispatcher,
		minAdvance:   time.Duration(minAdvanceMinutes) * time.Minute,
		storeTimeout: storeTimeout,
		now:          timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute só aceita um horário que GetAvailability poderia ter
// devolvido no instante da chamada. A janela do template é revalidada
// aqui, e a checagem de sobreposição acontece de novo dentro da mesma
// operação atômica que faz o insert: nada é confiado de uma leitura
// feita antes.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	// --------------------------------------------------
	// Barbeiro
	// --------------------------------------------------
	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, translateStoreErr(err, httperr.CodeBarberNotFound)
	}

	// --------------------------------------------------
	// Serviço (duração congelada no momento da reserva)
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, translateStoreErr(err, httperr.CodeServiceNotFound)
	}

	// --------------------------------------------------
	// Horário no passado / antecedência mínima
	// --------------------------------------------------
	minAllowed := uc.now().Add(uc.minAdvance)
	if !in.Start.After(minAllowed) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}

	// --------------------------------------------------
	// Janela do template + alinhamento de slot
	// --------------------------------------------------
	tmpl, err := uc.repo.GetTemplate(ctx, in.BarberID)
	if err != nil {
		return nil, translateStoreErr(err, httperr.CodeTemplateNotFound)
	}

	day, ok := tmpl.Day(in.Start.Weekday())
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeTemplateNotFound)
	}

	candidates, err := domain.GenerateSlots(day, in.Start, service.DurationMin)
	if err != nil {
		return nil, err
	}

	aligned := false
	for _, s := range candidates {
		if s.Start.Equal(in.Start) {
			aligned = true
			break
		}
	}
	if !aligned {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}

	// --------------------------------------------------
	// Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, translateStoreErr(err, httperr.CodeBookingNotFound)
	}

	// --------------------------------------------------
	// Insert atômico (único ponto de sincronização)
	// --------------------------------------------------
	ap := &models.Appointment{
		PublicID:    uuid.NewString(),
		BarberID:    in.BarberID,
		ClientID:    client.ID,
		ServiceID:   service.ID,
		StartTime:   in.Start,
		EndTime:     in.Start.Add(time.Duration(service.DurationMin) * time.Minute),
		DurationMin: service.DurationMin,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	if err := uc.repo.InsertIfNoOverlap(ctx, ap); err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotConflict) {
			metrics.IncBookingConflict()
			uc.audit.Dispatch(audit.Event{
				BarberID: &in.BarberID,
				Action:   "booking_conflict",
				Entity:   "appointment",
				Metadata: map[string]any{
					"start": ap.StartTime,
					"end":   ap.EndTime,
				},
			})
			return nil, err
		}
		return nil, translateStoreErr(err, httperr.CodeBarberNotFound)
	}

	metrics.IncBookingCreated()
	uc.cache.Invalidate(ctx, in.BarberID, in.Start.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		BarberID: &in.BarberID,
		Action:   "booking_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
