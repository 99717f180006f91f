package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// limiterIdleTTL минимальный простой бизнеса, после которого его лимитер удаляется
const limiterIdleTTL = 10 * time.Minute

type businessLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов отдельно для каждого бизнеса
// Должен стоять после Tenant. Лимитеры простаивающих бизнесов удаляются,
// поэтому размер карты ограничен числом бизнесов, активных за idleTTL
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[int64]*businessLimiter
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter создает ограничитель на requestsPerMinute запросов в минуту, 0 - без ограничения
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Inf
	idleTTL := limiterIdleTTL
	if requestsPerMinute > 0 {
		interval := time.Minute / time.Duration(requestsPerMinute)
		limit = rate.Every(interval)
		// Удалять раньше полного восстановления burst нельзя: новый лимитер выдал бы лишние запросы
		if refill := interval * time.Duration(burst); refill > idleTTL {
			idleTTL = refill
		}
	}
	return &RateLimiter{
		limiters: make(map[int64]*businessLimiter),
		limit:    limit,
		burst:    burst,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

func (l *RateLimiter) limiterFor(businessID int64) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	entry, ok := l.limiters[businessID]
	if !ok {
		entry = &businessLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[businessID] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep удаляет простаивающие лимитеры не чаще раза в idleTTL, вызывается под mu
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	for id, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.idleTTL {
			delete(l.limiters, id)
		}
	}
	l.lastSweep = now
}

// Middleware отклоняет запросы сверх лимита с 429
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		businessID, ok := GetBusinessID(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingBusinessID)
			return
		}

		if !l.limiterFor(businessID).Allow() {
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
