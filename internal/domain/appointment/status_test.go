package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvobarber/agenda-api/internal/httperr"
	"github.com/corvobarber/agenda-api/internal/models"
)

func TestIsBlocking(t *testing.T) {
	assert.True(t, IsBlocking(StatusPending))
	assert.True(t, IsBlocking(StatusConfirmed))
	assert.False(t, IsBlocking(StatusRejected))
	assert.False(t, IsBlocking(StatusCancelled))
}

func TestTransitions(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("ConfirmPending", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}
		require.NoError(t, Confirm(ap, now))
		assert.Equal(t, string(StatusConfirmed), ap.Status)
		require.NotNil(t, ap.ConfirmedAt)
		assert.Equal(t, now, *ap.ConfirmedAt)
	})

	t.Run("RejectPending", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}
		require.NoError(t, Reject(ap, now))
		assert.Equal(t, string(StatusRejected), ap.Status)
		assert.NotNil(t, ap.RejectedAt)
	})

	t.Run("CancelPending", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}
		require.NoError(t, Cancel(ap, now))
		assert.Equal(t, string(StatusCancelled), ap.Status)
		assert.NotNil(t, ap.CancelledAt)
	})

	t.Run("CancelConfirmed", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusConfirmed)}
		require.NoError(t, Cancel(ap, now))
		assert.Equal(t, string(StatusCancelled), ap.Status)
	})

	t.Run("ConfirmConfirmedFails", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusConfirmed)}
		err := Confirm(ap, now)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
	})

	t.Run("RejectConfirmedFails", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusConfirmed)}
		err := Reject(ap, now)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
	})

	t.Run("TerminalStatesAreFinal", func(t *testing.T) {
		for _, s := range []Status{StatusRejected, StatusCancelled} {
			ap := &models.Appointment{Status: string(s)}
			assert.Error(t, Confirm(ap, now))
			assert.Error(t, Reject(ap, now))
			assert.Error(t, Cancel(ap, now))
			assert.Equal(t, string(s), ap.Status)
		}
	})
}
