package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/corvobarber/agenda-api/internal/domain/appointment"
	"github.com/corvobarber/agenda-api/internal/httperr"
	"github.com/corvobarber/agenda-api/internal/models"
)

var activeStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
}

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Template
// --------------------------------------------------

func (r *AppointmentGormRepository) GetTemplate(
	ctx context.Context,
	barberID uint,
) (domain.WeekTemplate, error) {

	var rows []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return domain.TemplateFromModels(rows), nil
}

func (r *AppointmentGormRepository) ReplaceTemplate(
	ctx context.Context,
	barberID uint,
	tmpl domain.WeekTemplate,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		rows := make([]models.WorkingHours, 0, len(tmpl))
		for _, d := range tmpl {
			rows = append(rows, models.WorkingHours{
				BarberID:  barberID,
				Weekday:   int(d.Weekday),
				Active:    d.Available,
				StartTime: d.StartTime,
				EndTime:   d.EndTime,
			})
		}

		return tx.Create(&rows).Error
	})
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		Name:  name,
		Phone: phone,
		Email: email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// InsertIfNoOverlap revalida a sobreposição dentro da transação que faz
// o insert: nunca confia numa leitura anterior. O FOR UPDATE serializa
// tentativas concorrentes para o mesmo barbeiro; a constraint de
// exclusão do Postgres cobre qualquer corrida restante.
func (r *AppointmentGormRepository) InsertIfNoOverlap(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.BarberID, activeStatuses, ap.EndTime, ap.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}

		return tx.Create(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}

	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByPublicID(
	ctx context.Context,
	publicID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveForDay(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time", "status").
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID, activeStatuses, end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
