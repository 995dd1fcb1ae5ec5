package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvobarber/agenda-api/internal/audit"
	"github.com/corvobarber/agenda-api/internal/cache"
	domain "github.com/corvobarber/agenda-api/internal/domain/appointment"
	"github.com/corvobarber/agenda-api/internal/httperr"
	"github.com/corvobarber/agenda-api/internal/infra/repository"
	"github.com/corvobarber/agenda-api/internal/models"
)

const (
	testBarberID  = uint(1)
	testServiceID = uint(1)
)

// 2026-03-02 é segunda-feira; "agora" fixo é o domingo anterior.
var (
	testNow  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
)

func fixedNow() time.Time { return testNow }

func newSeededRepo(t *testing.T) *repository.AppointmentMemoryRepository {
	t.Helper()

	repo := repository.NewAppointmentMemoryRepository()
	repo.SeedBarber(models.Barber{ID: testBarberID, Name: "Ciro", Active: true})
	repo.SeedService(models.Service{ID: testServiceID, Name: "Corte", DurationMin: 60, Active: true})
	repo.SeedService(models.Service{ID: 2, Name: "Barba", DurationMin: 30, Active: true})
	repo.SeedService(models.Service{ID: 3, Name: "Desativado", DurationMin: 30, Active: false})

	tmpl := make(domain.WeekTemplate, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := domain.TemplateDay{Weekday: wd, Available: false}
		if wd == time.Monday {
			day = domain.TemplateDay{
				Weekday:   time.Monday,
				Available: true,
				StartTime: "09:00",
				EndTime:   "12:00",
			}
		}
		tmpl = append(tmpl, day)
	}
	repo.SeedTemplate(testBarberID, tmpl)

	return repo
}

func newTestDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil), zerolog.Nop())
}

func newAvailabilityUC(repo domain.Repository) *GetAvailability {
	uc := NewGetAvailability(repo, cache.NewNoopAvailabilityCache(), 0, 2*time.Second)
	uc.now = fixedNow
	return uc
}

func newCreateUC(repo domain.Repository) *CreateBooking {
	uc := NewCreateBooking(repo, cache.NewNoopAvailabilityCache(), newTestDispatcher(), 0, 2*time.Second)
	uc.now = fixedNow
	return uc
}

func slotAt(hm string) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		testDate.Year(), testDate.Month(), testDate.Day(),
		t.Hour(), t.Minute(), 0, 0,
		time.UTC,
	)
}

func createInput(hm string) CreateBookingInput {
	return CreateBookingInput{
		BarberID:    testBarberID,
		ServiceID:   testServiceID,
		ClientName:  "João",
		ClientPhone: "11999990000",
		Start:       slotAt(hm),
	}
}

// ======================================================
// AVAILABILITY
// ======================================================

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("OpenDayNoBookings", func(t *testing.T) {
		uc := newAvailabilityUC(newSeededRepo(t))

		slots, err := uc.Execute(ctx, domain.AvailabilityInput{
			BarberID: testBarberID, ServiceID: testServiceID, Date: testDate,
		})
		require.NoError(t, err)
		require.Len(t, slots, 3)
		assert.Equal(t, slotAt("09:00"), slots[0].Start)
		assert.Equal(t, slotAt("10:00"), slots[1].Start)
		assert.Equal(t, slotAt("11:00"), slots[2].Start)
	})

	t.Run("ClosedDayIsEmptyNotError", func(t *testing.T) {
		uc := newAvailabilityUC(newSeededRepo(t))

		tuesday := testDate.AddDate(0, 0, 1)
		slots, err := uc.Execute(ctx, domain.AvailabilityInput{
			BarberID: testBarberID, ServiceID: testServiceID, Date: tuesday,
		})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("ElapsedSlotsDropped", func(t *testing.T) {
		uc := newAvailabilityUC(newSeededRepo(t))
		// meio da manhã da própria segunda: 09:00 e 10:00 já passaram
		uc.now = func() time.Time { return slotAt("10:30") }

		slots, err := uc.Execute(ctx, domain.AvailabilityInput{
			BarberID: testBarberID, ServiceID: testServiceID, Date: testDate,
		})
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, slotAt("11:00"), slots[0].Start)
	})

	t.Run("UnknownBarber", func(t *testing.T) {
		uc := newAvailabilityUC(newSeededRepo(t))

		_, err := uc.Execute(ctx, domain.AvailabilityInput{
			BarberID: 99, ServiceID: testServiceID, Date: testDate,
		})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeBarberNotFound))
	})

	t.Run("InactiveService", func(t *testing.T) {
		uc := newAvailabilityUC(newSeededRepo(t))

		_, err := uc.Execute(ctx, domain.AvailabilityInput{
			BarberID: testBarberID, ServiceID: 3, Date: testDate,
		})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound))
	})

	t.Run("IdempotentQuery", func(t *testing.T) {
		uc := newAvailabilityUC(newSeededRepo(t))
		in := domain.AvailabilityInput{
			BarberID: testBarberID, ServiceID: testServiceID, Date: testDate,
		}

		first, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		second, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

// ======================================================
// CREATE BOOKING
// ======================================================

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("HappyPath", func(t *testing.T) {
		repo := newSeededRepo(t)
		uc := newCreateUC(repo)

		ap, err := uc.Execute(ctx, createInput("10:00"))
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusPending), ap.Status)
		assert.NotEmpty(t, ap.PublicID)
		assert.Equal(t, 60, ap.DurationMin)
		assert.Equal(t, slotAt("10:00"), ap.StartTime)
		assert.Equal(t, slotAt("11:00"), ap.EndTime)
	})

	t.Run("DurationFrozenAtBookingTime", func(t *testing.T) {
		repo := newSeededRepo(t)
		uc := newCreateUC(repo)

		ap, err := uc.Execute(ctx, createInput("09:00"))
		require.NoError(t, err)

		// Editar o serviço depois não mexe no agendamento existente.
		repo.SeedService(models.Service{ID: testServiceID, Name: "Corte", DurationMin: 45, Active: true})

		stored, err := repo.GetAppointmentByPublicID(ctx, ap.PublicID)
		require.NoError(t, err)
		assert.Equal(t, 60, stored.DurationMin)
	})

	t.Run("SecondBookingSameSlotConflicts", func(t *testing.T) {
		repo := newSeededRepo(t)
		uc := newCreateUC(repo)

		_, err := uc.Execute(ctx, createInput("10:00"))
		require.NoError(t, err)

		_, err = uc.Execute(ctx, createInput("10:00"))
		assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
	})

	t.Run("OverlappingDifferentServiceConflicts", func(t *testing.T) {
		repo := newSeededRepo(t)
		uc := newCreateUC(repo)

		_, err := uc.Execute(ctx, createInput("10:00")) // 10:00–11:00
		require.NoError(t, err)

		in := createInput("10:30") // serviço de 30min, 10:30–11:00
		in.ServiceID = 2
		_, err = uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
	})

	t.Run("MisalignedStartIsInvalidSlot", func(t *testing.T) {
		uc := newCreateUC(newSeededRepo(t))

		_, err := uc.Execute(ctx, createInput("10:30"))
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidSlot))
	})

	t.Run("OutsideWindowIsInvalidSlot", func(t *testing.T) {
		uc := newCreateUC(newSeededRepo(t))

		_, err := uc.Execute(ctx, createInput("08:00"))
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidSlot))
	})

	t.Run("PastStartIsInvalidSlot", func(t *testing.T) {
		uc := newCreateUC(newSeededRepo(t))
		uc.now = func() time.Time { return slotAt("13:00") }

		_, err := uc.Execute(ctx, createInput("10:00"))
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidSlot))
	})

	t.Run("ClosedDayIsInvalidSlot", func(t *testing.T) {
		uc := newCreateUC(newSeededRepo(t))

		in := createInput("10:00")
		in.Start = in.Start.AddDate(0, 0, 1) // terça, fechado
		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidSlot))
	})

	t.Run("UnknownServiceIsNotFound", func(t *testing.T) {
		uc := newCreateUC(newSeededRepo(t))

		in := createInput("10:00")
		in.ServiceID = 99
		_, err := uc.Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound))
	})
}

// ======================================================
// SCENARIO + CONCURRENCY
// ======================================================

func TestBookingScenario(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepo(t)
	availUC := newAvailabilityUC(repo)
	createUC := newCreateUC(repo)

	in := domain.AvailabilityInput{
		BarberID: testBarberID, ServiceID: testServiceID, Date: testDate,
	}

	slots, err := availUC.Execute(ctx, in)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	_, err = createUC.Execute(ctx, createInput("10:00"))
	require.NoError(t, err)

	slots, err = availUC.Execute(ctx, in)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, slotAt("09:00"), slots[0].Start)
	assert.Equal(t, slotAt("11:00"), slots[1].Start)

	_, err = createUC.Execute(ctx, createInput("10:00"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepo(t)
	createUC := newCreateUC(repo)

	const goroutines = 16

	var wg sync.WaitGroup
	wg.Add(goroutines)
	results := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, err := createUC.Execute(ctx, createInput("10:00"))
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	wins, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case httperr.IsBusiness(err, httperr.CodeSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins, "exactly one booking must win the slot")
	assert.Equal(t, goroutines-1, conflicts)

	active, err := repo.ListActiveForDay(
		ctx,
		testBarberID,
		testDate,
		testDate.Add(24*time.Hour),
	)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

// ======================================================
// TRANSITIONS FREE THE SLOT
// ======================================================

func TestCancelFreesSlot(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepo(t)
	availUC := newAvailabilityUC(repo)
	createUC := newCreateUC(repo)
	cancelUC := NewCancelBooking(repo, cache.NewNoopAvailabilityCache(), newTestDispatcher(), 2*time.Second)

	ap, err := createUC.Execute(ctx, createInput("10:00"))
	require.NoError(t, err)

	in := domain.AvailabilityInput{
		BarberID: testBarberID, ServiceID: testServiceID, Date: testDate,
	}
	slots, err := availUC.Execute(ctx, in)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	_, err = cancelUC.Execute(ctx, ap.PublicID)
	require.NoError(t, err)

	slots, err = availUC.Execute(ctx, in)
	require.NoError(t, err)
	assert.Len(t, slots, 3)
}

func TestConfirmedStillBlocks(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepo(t)
	createUC := newCreateUC(repo)
	confirmUC := NewConfirmBooking(repo, cache.NewNoopAvailabilityCache(), newTestDispatcher(), 2*time.Second)

	ap, err := createUC.Execute(ctx, createInput("10:00"))
	require.NoError(t, err)

	confirmed, err := confirmUC.Execute(ctx, ap.PublicID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), confirmed.Status)

	_, err = createUC.Execute(ctx, createInput("10:00"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
}

func TestRejectFreesSlot(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepo(t)
	createUC := newCreateUC(repo)
	rejectUC := NewRejectBooking(repo, cache.NewNoopAvailabilityCache(), newTestDispatcher(), 2*time.Second)

	ap, err := createUC.Execute(ctx, createInput("10:00"))
	require.NoError(t, err)

	_, err = rejectUC.Execute(ctx, ap.PublicID)
	require.NoError(t, err)

	_, err = createUC.Execute(ctx, createInput("10:00"))
	assert.NoError(t, err)
}

// ======================================================
// TIMEOUT
// ======================================================

// stalledRepo simula um store que não responde dentro do prazo.
type stalledRepo struct {
	domain.Repository
}

func (r stalledRepo) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestStoreTimeoutIsDistinctFromConflict(t *testing.T) {
	repo := stalledRepo{Repository: newSeededRepo(t)}
	uc := NewCreateBooking(repo, cache.NewNoopAvailabilityCache(), newTestDispatcher(), 0, 20*time.Millisecond)
	uc.now = fixedNow

	_, err := uc.Execute(context.Background(), createInput("10:00"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeStoreTimeout))
	assert.False(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
}
