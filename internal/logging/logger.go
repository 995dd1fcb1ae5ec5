package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New constrói o logger da aplicação. JSON em stdout, nível info por
// padrão quando o valor configurado não parseia.
func New(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil {
		lvl = parsed
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Timestamp().
		Str("app", "agenda-api").
		Logger()
}
