package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/2beens/fitsuggest/internal/telemetry/metrics"
	"github.com/2beens/fitsuggest/pkg"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

var _ RequestRateLimiter = (*redis_rate.Limiter)(nil)
var _ RequestRateLimiter = (*LocalRateLimiter)(nil)

// RateLimit limits requests per client ip within the given router.
func RateLimit(
	rateLimiter RequestRateLimiter,
	routerName string,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := routerName
			if reqIp, err := pkg.ReadUserIP(r); err == nil && reqIp != "" {
				key = routerName + ":" + reqIp
			}

			res, err := rateLimiter.Allow(
				r.Context(),
				key,
				redis_rate.PerMinute(allowedPerMin),
			)
			if err != nil {
				log.Errorf("rate limiter [%s]: %s", routerName, err)
				http.Error(w, "rate limit internal error", http.StatusInternalServerError)
				return
			}

			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.Inc()
			}
			w.Header().Set("Retry-After", fmt.Sprintf("%.0f", res.RetryAfter.Seconds()))
			http.Error(
				w,
				fmt.Sprintf("retry after %f seconds", res.RetryAfter.Seconds()),
				http.StatusTooManyRequests,
			)
		})
	}
}

// LocalRateLimiter is an in-process limiter for running without redis.
type LocalRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewLocalRateLimiter() *LocalRateLimiter {
	return &LocalRateLimiter{
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *LocalRateLimiter) Allow(_ context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	if limit.Period <= 0 || limit.Rate <= 0 {
		return nil, fmt.Errorf("invalid limit: %s", limit)
	}

	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		every := limit.Period / time.Duration(limit.Rate)
		limiter = rate.NewLimiter(rate.Every(every), limit.Burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	now := time.Now()
	reservation := limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return &redis_rate.Result{Limit: limit, Allowed: 0, RetryAfter: limit.Period}, nil
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return &redis_rate.Result{Limit: limit, Allowed: 0, RetryAfter: delay}, nil
	}

	return &redis_rate.Result{
		Limit:      limit,
		Allowed:    1,
		Remaining:  int(limiter.TokensAt(now)),
		RetryAfter: -1,
	}, nil
}
