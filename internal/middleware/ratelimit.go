package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/corvobarber/agenda-api/internal/httperr"
)

type rateLimiter struct {
	limiters sync.Map
	rps      float64
	burst    int
}

func (l *rateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	burst := l.burst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(l.rps), burst)
	actual, _ := l.limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}

// RateLimit limita requisições por IP de origem. Aplicado só nas rotas
// públicas de reserva.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	l := &rateLimiter{rps: rps, burst: burst}

	return func(c *gin.Context) {
		if !l.getLimiter(c.ClientIP()).Allow() {
			httperr.TooManyRequests(c, "rate_limited", "Muitas requisições. Tente novamente em instantes.")
			c.Abort()
			return
		}
		c.Next()
	}
}
