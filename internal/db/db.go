package db

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/corvobarber/agenda-api/internal/config"
	"github.com/corvobarber/agenda-api/internal/models"
)

func NewDB(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Barber{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	// Segunda linha de defesa contra reservas sobrepostas, além do
	// SELECT ... FOR UPDATE na transação de criação: o próprio Postgres
	// rejeita dois agendamentos ativos do mesmo barbeiro com intervalos
	// que se cruzam (SQLSTATE 23P01).
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    barber_id WITH =,
                    tsrange(start_time, end_time) WITH &&
                ) WHERE (status IN ('pending', 'confirmed'));
            END IF;
        END $$
    `)

	return db
}
