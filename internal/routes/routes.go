package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/corvobarber/agenda-api/internal/audit"
	"github.com/corvobarber/agenda-api/internal/cache"
	"github.com/corvobarber/agenda-api/internal/config"
	domain "github.com/corvobarber/agenda-api/internal/domain/appointment"
	"github.com/corvobarber/agenda-api/internal/handlers"
	"github.com/corvobarber/agenda-api/internal/metrics"
	"github.com/corvobarber/agenda-api/internal/middleware"
	ucAppointment "github.com/corvobarber/agenda-api/internal/usecase/appointment"
)

type Deps struct {
	Repo  domain.Repository
	Cache cache.AvailabilityCache
	Audit *audit.Dispatcher
	Cfg   *config.Config
	Log   zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, deps Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID(deps.Log))

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(
		deps.Repo,
		deps.Cache,
		deps.Cfg.MinAdvanceMinutes,
		deps.Cfg.StoreTimeout,
	)

	createBookingUC := ucAppointment.NewCreateBooking(
		deps.Repo,
		deps.Cache,
		deps.Audit,
		deps.Cfg.MinAdvanceMinutes,
		deps.Cfg.StoreTimeout,
	)

	confirmUC := ucAppointment.NewConfirmBooking(
		deps.Repo,
		deps.Cache,
		deps.Audit,
		deps.Cfg.StoreTimeout,
	)

	rejectUC := ucAppointment.NewRejectBooking(
		deps.Repo,
		deps.Cache,
		deps.Audit,
		deps.Cfg.StoreTimeout,
	)

	cancelUC := ucAppointment.NewCancelBooking(
		deps.Repo,
		deps.Cache,
		deps.Audit,
		deps.Cfg.StoreTimeout,
	)

	listByDateUC := ucAppointment.NewListAppointmentsByDate(
		deps.Repo,
		deps.Cfg.StoreTimeout,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC, deps.Cfg.Timezone)
	bookingHandler := handlers.NewBookingHandler(createBookingUC, deps.Cfg.Timezone)
	appointmentHandler := handlers.NewAppointmentHandler(
		confirmUC,
		rejectUC,
		cancelUC,
		listByDateUC,
		deps.Cfg.Timezone,
	)
	templateHandler := handlers.NewTemplateHandler(deps.Repo, deps.Audit)

	// ======================================================
	// OBSERVABILIDADE
	// ======================================================
	metrics.Register()
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (cliente)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/barbers/:id/availability", availabilityHandler.Get)

			publicAPI.POST(
				"/barbers/:id/appointments",
				middleware.RateLimit(deps.Cfg.RateLimitRPS, deps.Cfg.RateLimitBurst),
				bookingHandler.Create,
			)

			publicAPI.PATCH("/appointments/:publicId/cancel", appointmentHandler.Cancel)
		}

		// ------------------------------
		// AGENDA DO BARBEIRO
		// ------------------------------
		api.GET("/barbers/:id/appointments", appointmentHandler.ListByDate)
		api.PATCH("/appointments/:publicId/confirm", appointmentHandler.Confirm)
		api.PATCH("/appointments/:publicId/reject", appointmentHandler.Reject)
		api.PATCH("/appointments/:publicId/cancel", appointmentHandler.Cancel)

		// ------------------------------
		// TEMPLATE (fronteira com admin)
		// ------------------------------
		api.GET("/barbers/:id/working-hours", templateHandler.Get)
		api.PUT("/barbers/:id/working-hours", templateHandler.Update)
	}
}
