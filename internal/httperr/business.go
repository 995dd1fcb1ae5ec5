package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ===============================
// Business Errors
// ===============================

// Códigos usados pelo scheduler. Os handlers traduzem cada código
// para o status HTTP correspondente.
const (
	CodeBarberNotFound   = "barber_not_found"
	CodeServiceNotFound  = "service_not_found"
	CodeTemplateNotFound = "template_not_found"
	CodeBookingNotFound  = "booking_not_found"
	CodeInvalidSlot      = "invalid_slot"
	CodeSlotConflict     = "slot_conflict"
	CodeStoreTimeout     = "store_timeout"
	CodeInvalidRange     = "invalid_range"
	CodeInvalidState     = "invalid_state"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// IsNotFound cobre os três colaboradores externos (barbeiro, serviço,
// template) e o próprio agendamento.
func IsNotFound(err error) bool {
	return IsBusiness(err, CodeBarberNotFound) ||
		IsBusiness(err, CodeServiceNotFound) ||
		IsBusiness(err, CodeTemplateNotFound) ||
		IsBusiness(err, CodeBookingNotFound)
}

// IsExclusionConflict detecta violação da constraint EXCLUDE do Postgres
// (SQLSTATE 23P01) que protege o intervalo (barber_id, tsrange).
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}
