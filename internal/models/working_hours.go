package models

import "time"

type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_barber_weekday,unique" json:"barber_id"`

	Weekday int `gorm:"index:idx_barber_weekday,unique" json:"weekday"`

	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
