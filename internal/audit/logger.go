package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/corvobarber/agenda-api/internal/models"
)

type Logger struct {
	db *gorm.DB
}

// New aceita db nulo (modo memory): eventos são descartados em silêncio.
func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	barberID *uint,
	action string,
	entity string,
	entityID *uint,
	metadata any,
) error {

	if l.db == nil {
		return nil
	}

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		BarberID: barberID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metaJSON,
	}

	return l.db.Create(&entry).Error
}
