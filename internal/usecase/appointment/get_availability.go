package appointment

import (
	"context"
	"time"

	"github.com/corvobarber/agenda-api/internal/cache"
	domain "github.com/corvobarber/agenda-api/internal/domain/appointment"
	"github.com/corvobarber/agenda-api/internal/httperr"
	"github.com/corvobarber/agenda-api/internal/metrics"
	"github.com/corvobarber/agenda-api/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	cache cache.AvailabilityCache

	minAdvance   time.Duration
	storeTimeout time.Duration

	now func() time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	availCache cache.AvailabilityCache,
	minAdvanceMinutes int,
	storeTimeout time.Duration,
) *GetAvailability {
	return &GetAvailability{
		repo:         repo,
		cache:        availCache,
		minAdvance:   time.Duration(minAdvanceMinutes) * time.Minute,
		storeTimeout: storeTimeout,
		now:          timezone.Now,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	started := time.Now()
	metrics.IncAvailabilityRequest()
	defer func() {
		metrics.ObserveAvailability(time.Since(started).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	dateKey := in.Date.Format("2006-01-02")

	// O corte de "já passou" é reaplicado em cima do cache: um slot pode
	// ter expirado dentro do TTL.
	if cached, ok := uc.cache.Get(ctx, in.BarberID, dateKey, in.ServiceID); ok {
		metrics.IncCacheHit()
		return uc.dropElapsed(cached), nil
	}
	metrics.IncCacheMiss()

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, translateStoreErr(err, httperr.CodeBarberNotFound)
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, translateStoreErr(err, httperr.CodeServiceNotFound)
	}

	tmpl, err := uc.repo.GetTemplate(ctx, in.BarberID)
	if err != nil {
		return nil, translateStoreErr(err, httperr.CodeTemplateNotFound)
	}

	day, ok := tmpl.Day(in.Date.Weekday())
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeTemplateNotFound)
	}

	candidates, err := domain.GenerateSlots(day, in.Date, service.DurationMin)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		in.Date.Location(),
	)
	dayEnd := dayStart.Add(24 * time.Hour)

	existing, err := uc.repo.ListActiveForDay(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return nil, translateStoreErr(err, httperr.CodeBarberNotFound)
	}

	free := domain.FilterConflicts(candidates, existing)

	uc.cache.Set(ctx, in.BarberID, dateKey, in.ServiceID, free)

	return uc.dropElapsed(free), nil
}

// dropElapsed remove slots que não começam estritamente depois de
// agora (+antecedência mínima configurada). Lista vazia é resultado
// válido, não erro.
func (uc *GetAvailability) dropElapsed(slots []domain.Slot) []domain.Slot {
	limit := uc.now().Add(uc.minAdvance)

	out := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if s.Start.After(limit) {
			out = append(out, s)
		}
	}
	return out
}
