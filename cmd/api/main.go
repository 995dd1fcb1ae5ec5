package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/corvobarber/agenda-api/internal/audit"
	"github.com/corvobarber/agenda-api/internal/cache"
	"github.com/corvobarber/agenda-api/internal/config"
	dbpkg "github.com/corvobarber/agenda-api/internal/db"
	domain "github.com/corvobarber/agenda-api/internal/domain/appointment"
	infraRepo "github.com/corvobarber/agenda-api/internal/infra/repository"
	"github.com/corvobarber/agenda-api/internal/logging"
	"github.com/corvobarber/agenda-api/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	var (
		repo   domain.Repository
		gormDB *gorm.DB
	)

	switch cfg.StorageDriver {
	case "memory":
		repo = infraRepo.NewAppointmentMemoryRepository()
		log.Warn().Msg("using in-memory storage, data will not survive restarts")
	default:
		gormDB = dbpkg.NewDB(cfg, log)
		repo = infraRepo.NewAppointmentGormRepository(gormDB)
	}

	var availCache cache.AvailabilityCache = cache.NewNoopAvailabilityCache()
	if cfg.RedisAddr != "" {
		client := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		availCache = cache.NewRedisAvailabilityCache(client, cfg.AvailabilityCacheTTL)
		log.Info().Str("addr", cfg.RedisAddr).Msg("availability cache enabled")
	}

	auditDispatcher := audit.NewDispatcher(audit.New(gormDB), log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		Repo:  repo,
		Cache: availCache,
		Audit: auditDispatcher,
		Cfg:   cfg,
		Log:   log,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}
