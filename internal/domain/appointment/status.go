package appointment

import "github.com/corvobarber/agenda-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// IsBlocking diz se o status conta para conflito de horário.
// Pending e Confirmed são tratados de forma idêntica aqui.
func IsBlocking(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Transições
// ===============================

// pending -> confirmed | rejected | cancelled
// confirmed -> cancelled
// rejected e cancelled são terminais.

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
