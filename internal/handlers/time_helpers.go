package handlers

import (
	"time"

	"github.com/corvobarber/agenda-api/internal/timezone"
)

// --------------------------------------------------
// Horários wall-clock da barbearia
// --------------------------------------------------

func parseDateInShop(tz string, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(tz),
	)
}

func parseDateTimeInShop(
	tz string,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		timezone.Location(tz),
	)
}
