package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/corvobarber/agenda-api/internal/domain/appointment"
	"github.com/corvobarber/agenda-api/internal/httperr"
	"github.com/corvobarber/agenda-api/internal/models"
)

func memAppt(barberID uint, start, end time.Time, status domain.Status) *models.Appointment {
	return &models.Appointment{
		PublicID:    fmt.Sprintf("pub-%d-%s", barberID, start.Format("150405")),
		BarberID:    barberID,
		ClientID:    1,
		ServiceID:   1,
		StartTime:   start,
		EndTime:     end,
		DurationMin: int(end.Sub(start).Minutes()),
		Status:      string(status),
	}
}

func TestMemoryRepositoryInsertIfNoOverlap(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}

	t.Run("RejectsOverlapWithPending", func(t *testing.T) {
		repo := NewAppointmentMemoryRepository()

		require.NoError(t, repo.InsertIfNoOverlap(ctx, memAppt(1, at(10, 0), at(11, 0), domain.StatusPending)))

		err := repo.InsertIfNoOverlap(ctx, memAppt(1, at(10, 30), at(11, 30), domain.StatusPending))
		assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
	})

	t.Run("TouchingEdgesAllowed", func(t *testing.T) {
		repo := NewAppointmentMemoryRepository()

		require.NoError(t, repo.InsertIfNoOverlap(ctx, memAppt(1, at(10, 0), at(11, 0), domain.StatusPending)))
		assert.NoError(t, repo.InsertIfNoOverlap(ctx, memAppt(1, at(11, 0), at(12, 0), domain.StatusPending)))
		assert.NoError(t, repo.InsertIfNoOverlap(ctx, memAppt(1, at(9, 0), at(10, 0), domain.StatusPending)))
	})

	t.Run("CancelledDoesNotBlock", func(t *testing.T) {
		repo := NewAppointmentMemoryRepository()

		require.NoError(t, repo.InsertIfNoOverlap(ctx, memAppt(1, at(10, 0), at(11, 0), domain.StatusCancelled)))
		assert.NoError(t, repo.InsertIfNoOverlap(ctx, memAppt(1, at(10, 0), at(11, 0), domain.StatusPending)))
	})

	t.Run("OtherBarberDoesNotBlock", func(t *testing.T) {
		repo := NewAppointmentMemoryRepository()

		require.NoError(t, repo.InsertIfNoOverlap(ctx, memAppt(1, at(10, 0), at(11, 0), domain.StatusConfirmed)))
		assert.NoError(t, repo.InsertIfNoOverlap(ctx, memAppt(2, at(10, 0), at(11, 0), domain.StatusPending)))
	})

	t.Run("ConcurrentSameSlotSingleWinner", func(t *testing.T) {
		repo := NewAppointmentMemoryRepository()

		const goroutines = 32

		var wg sync.WaitGroup
		wg.Add(goroutines)
		results := make(chan error, goroutines)

		for i := 0; i < goroutines; i++ {
			go func(i int) {
				defer wg.Done()
				ap := memAppt(1, at(10, 0), at(11, 0), domain.StatusPending)
				ap.PublicID = fmt.Sprintf("pub-race-%d", i)
				results <- repo.InsertIfNoOverlap(ctx, ap)
			}(i)
		}

		wg.Wait()
		close(results)

		wins := 0
		for err := range results {
			if err == nil {
				wins++
				continue
			}
			assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))
		}
		assert.Equal(t, 1, wins)

		active, err := repo.ListActiveForDay(ctx, 1, day, day.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Len(t, active, 1)
	})
}

func TestMemoryRepositoryClients(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentMemoryRepository()

	first, err := repo.GetOrCreateClient(ctx, "João", "11999990000", "joao@example.com")
	require.NoError(t, err)

	// Mesmo telefone identifica o mesmo cliente, nome diferente não cria outro.
	second, err := repo.GetOrCreateClient(ctx, "João Silva", "11999990000", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	third, err := repo.GetOrCreateClient(ctx, "Maria", "11888880000", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestMemoryRepositoryTemplates(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentMemoryRepository()

	_, err := repo.GetTemplate(ctx, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	tmpl := domain.WeekTemplate{
		{Weekday: time.Monday, Available: true, StartTime: "09:00", EndTime: "12:00"},
	}
	require.NoError(t, repo.ReplaceTemplate(ctx, 1, tmpl))

	got, err := repo.GetTemplate(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	// O retorno é uma cópia: mutações do chamador não vazam para o store.
	got[0].EndTime = "23:00"
	again, err := repo.GetTemplate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "12:00", again[0].EndTime)
}

func TestMemoryRepositoryAppointmentLookup(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	repo := NewAppointmentMemoryRepository()

	_, err := repo.GetAppointmentByPublicID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	ap := memAppt(1, day.Add(10*time.Hour), day.Add(11*time.Hour), domain.StatusPending)
	require.NoError(t, repo.InsertIfNoOverlap(ctx, ap))

	got, err := repo.GetAppointmentByPublicID(ctx, ap.PublicID)
	require.NoError(t, err)
	assert.Equal(t, ap.ID, got.ID)

	got.Status = string(domain.StatusConfirmed)
	require.NoError(t, repo.UpdateAppointment(ctx, got))

	reloaded, err := repo.GetAppointmentByPublicID(ctx, ap.PublicID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), reloaded.Status)

	err = repo.UpdateAppointment(ctx, &models.Appointment{ID: 999})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
