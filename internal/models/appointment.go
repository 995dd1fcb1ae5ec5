package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Identificador exposto nas URLs públicas, gerado na criação.
	PublicID string `gorm:"size:36;uniqueIndex" json:"public_id"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Copiado do serviço no momento da reserva: editar o serviço depois
	// não altera agendamentos já criados.
	DurationMin int `json:"duration_min"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	RejectedAt  *time.Time `json:"rejected_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
