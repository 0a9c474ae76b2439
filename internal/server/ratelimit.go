package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// CleanupInterval период очистки неактивных лимитеров
	CleanupInterval = 5 * time.Minute
	// LimiterTTL время жизни лимитера без запросов
	LimiterTTL = 10 * time.Minute
)

// RateLimiter ограничивает частоту запросов для каждого клиента
type RateLimiter struct {
	limiters          map[string]*limiterEntry
	mu                sync.Mutex
	requestsPerMinute int
	rateLimit         float64
	burstSize         int
	stopOnce          sync.Once
	stopCh            chan struct{}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter создаёт RateLimiter и запускает горутину очистки
func NewRateLimiter(requestsPerMinute int, burstSize int) *RateLimiter {
	rl := &RateLimiter{
		limiters:          make(map[string]*limiterEntry),
		requestsPerMinute: requestsPerMinute,
		rateLimit:         float64(requestsPerMinute) / 60.0,
		burstSize:         burstSize,
		stopCh:            make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Allow проверяет, можно ли пропустить запрос клиента
func (r *RateLimiter) Allow(clientID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.limiters[clientID]
	if !exists {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Limit(r.rateLimit), r.burstSize),
		}
		r.limiters[clientID] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			now := time.Now()
			for clientID, entry := range r.limiters {
				if now.Sub(entry.lastSeen) > LimiterTTL {
					delete(r.limiters, clientID)
				}
			}
			r.mu.Unlock()
		case <-r.stopCh:
			return
		}
	}
}

// Stop останавливает горутину очистки
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// Middleware ограничивает запросы по IP клиента
func (r *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID := c.RealIP()

			if !r.Allow(clientID) {
				retryAfter := 1
				if r.rateLimit > 0 {
					retryAfter = int(1/r.rateLimit) + 1
				}
				c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", r.requestsPerMinute))
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))

				log.Warn().
					Str("client", clientID).
					Int("retry_after", retryAfter).
					Msg("Rate limit exceeded")

				return problem(c, http.StatusTooManyRequests, ErrorTypeRateLimit, "Rate Limit Exceeded",
					fmt.Sprintf("Too many requests. Please retry after %d seconds.", retryAfter))
			}

			return next(c)
		}
	}
}
