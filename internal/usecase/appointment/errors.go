package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/corvobarber/agenda-api/internal/httperr"
)

// translateStoreErr converte falhas do store para a taxonomia de
// negócio: deadline estourado vira store_timeout (nunca slot_conflict),
// registro ausente vira o not-found do colaborador consultado.
func translateStoreErr(err error, notFoundCode string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return httperr.ErrBusiness(httperr.CodeStoreTimeout)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return httperr.ErrBusiness(notFoundCode)
	default:
		return err
	}
}
