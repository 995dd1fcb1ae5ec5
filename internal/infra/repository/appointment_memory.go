package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/corvobarber/agenda-api/internal/domain/appointment"
	"github.com/corvobarber/agenda-api/internal/httperr"
	"github.com/corvobarber/agenda-api/internal/models"
)

// AppointmentMemoryRepository guarda tudo em memória. Usado nos testes
// e no modo de desenvolvimento (STORAGE_DRIVER=memory). A exclusão
// mútua por barbeiro vem de um mutex por barbeiro mantido durante o
// check-and-insert inteiro.
type AppointmentMemoryRepository struct {
	mu sync.RWMutex

	barbers      map[uint]*models.Barber
	services     map[uint]*models.Service
	templates    map[uint]domain.WeekTemplate
	clients      map[uint]*models.Client
	appointments map[uint]*models.Appointment

	nextClientID      uint
	nextAppointmentID uint

	barberLocks sync.Map // uint -> *sync.Mutex
}

func NewAppointmentMemoryRepository() *AppointmentMemoryRepository {
	return &AppointmentMemoryRepository{
		barbers:           make(map[uint]*models.Barber),
		services:          make(map[uint]*models.Service),
		templates:         make(map[uint]domain.WeekTemplate),
		clients:           make(map[uint]*models.Client),
		appointments:      make(map[uint]*models.Appointment),
		nextClientID:      1,
		nextAppointmentID: 1,
	}
}

func (r *AppointmentMemoryRepository) lockFor(barberID uint) *sync.Mutex {
	if v, ok := r.barberLocks.Load(barberID); ok {
		return v.(*sync.Mutex)
	}
	v, _ := r.barberLocks.LoadOrStore(barberID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// --------------------------------------------------
// Seeds (dev / testes)
// --------------------------------------------------

func (r *AppointmentMemoryRepository) SeedBarber(b models.Barber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := b
	r.barbers[b.ID] = &out
}

func (r *AppointmentMemoryRepository) SeedService(s models.Service) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := s
	r.services[s.ID] = &out
}

func (r *AppointmentMemoryRepository) SeedTemplate(barberID uint, tmpl domain.WeekTemplate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[barberID] = tmpl
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *AppointmentMemoryRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.barbers[id]
	if !ok || !b.Active {
		return nil, gorm.ErrRecordNotFound
	}
	out := *b
	return &out, nil
}

func (r *AppointmentMemoryRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.services[id]
	if !ok || !s.Active {
		return nil, gorm.ErrRecordNotFound
	}
	out := *s
	return &out, nil
}

func (r *AppointmentMemoryRepository) GetTemplate(
	ctx context.Context,
	barberID uint,
) (domain.WeekTemplate, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	tmpl, ok := r.templates[barberID]
	if !ok || len(tmpl) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	out := make(domain.WeekTemplate, len(tmpl))
	copy(out, tmpl)
	return out, nil
}

func (r *AppointmentMemoryRepository) ReplaceTemplate(
	ctx context.Context,
	barberID uint,
	tmpl domain.WeekTemplate,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make(domain.WeekTemplate, len(tmpl))
	copy(stored, tmpl)
	r.templates[barberID] = stored
	return nil
}

func (r *AppointmentMemoryRepository) GetOrCreateClient(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cl := range r.clients {
		if cl.Phone == phone {
			out := *cl
			return &out, nil
		}
	}

	client := &models.Client{
		ID:    r.nextClientID,
		Name:  name,
		Phone: phone,
		Email: email,
	}
	r.nextClientID++
	r.clients[client.ID] = client

	out := *client
	return &out, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentMemoryRepository) InsertIfNoOverlap(
	ctx context.Context,
	ap *models.Appointment,
) error {

	// Serializa apenas reservas do mesmo barbeiro.
	lock := r.lockFor(ap.BarberID)
	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.appointments {
		if existing.BarberID != ap.BarberID {
			continue
		}
		if !domain.IsBlocking(domain.Status(existing.Status)) {
			continue
		}
		if existing.StartTime.Before(ap.EndTime) && ap.StartTime.Before(existing.EndTime) {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}
	}

	ap.ID = r.nextAppointmentID
	r.nextAppointmentID++
	ap.CreatedAt = time.Now()
	ap.UpdatedAt = ap.CreatedAt

	stored := *ap
	r.appointments[ap.ID] = &stored

	return nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentMemoryRepository) GetAppointmentByPublicID(
	ctx context.Context,
	publicID string,
) (*models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ap := range r.appointments {
		if ap.PublicID == publicID {
			out := *ap
			return &out, nil
		}
	}

	return nil, gorm.ErrRecordNotFound
}

func (r *AppointmentMemoryRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}

	ap.UpdatedAt = time.Now()
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentMemoryRepository) ListActiveForDay(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	var apps []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if !domain.IsBlocking(domain.Status(ap.Status)) {
			continue
		}
		if ap.StartTime.Before(end) && start.Before(ap.EndTime) {
			apps = append(apps, *ap)
		}
	}

	sort.Slice(apps, func(i, j int) bool {
		return apps[i].StartTime.Before(apps[j].StartTime)
	})

	return apps, nil
}

func (r *AppointmentMemoryRepository) ListForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	var apps []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			apps = append(apps, *ap)
		}
	}

	sort.Slice(apps, func(i, j int) bool {
		return apps[i].StartTime.Before(apps[j].StartTime)
	})

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentMemoryRepository)(nil)
