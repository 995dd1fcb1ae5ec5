package appointment

import (
	"time"

	"github.com/corvobarber/agenda-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transições são disparadas por ações externas (barbeiro, cliente,
// admin); o scheduler só garante que as regras de estado valem.

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Reject(ap *models.Appointment, now time.Time) error {
	if err := CanReject(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusRejected)
	ap.RejectedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}
