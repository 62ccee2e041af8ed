package api

import (
	"math"
	"net/http"
	"strconv"
	"sync"

	"golang.org/x/time/rate"

	"github.com/vytor/studyflash/internal/errors"
)

// RateLimiter keeps one token bucket per profile. Buckets live until the
// profile is deleted; there are only ever a handful of learners per instance.
type RateLimiter struct {
	mu     sync.Mutex
	limits map[int64]*rate.Limiter
	every  rate.Limit
	burst  int
}

// NewRateLimiter allows perMinute requests per profile on average with the
// given burst.
func NewRateLimiter(perMinute float64, burst int) *RateLimiter {
	return &RateLimiter{
		limits: make(map[int64]*rate.Limiter),
		every:  rate.Limit(perMinute / 60),
		burst:  burst,
	}
}

func (rl *RateLimiter) getLimiter(profileID int64) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limits[profileID]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(rl.every, rl.burst)
	rl.limits[profileID] = limiter
	return limiter
}

// Allow reports whether the profile may make another request now.
func (rl *RateLimiter) Allow(profileID int64) bool {
	return rl.getLimiter(profileID).Allow()
}

// Forget drops the profile's bucket.
func (rl *RateLimiter) Forget(profileID int64) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.limits, profileID)
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limits)
}

// retryAfterSeconds is the time for one token to refill, rounded up.
func (rl *RateLimiter) retryAfterSeconds() int {
	return int(math.Ceil(1 / float64(rl.every)))
}

// generationLimitMiddleware must run after profileMiddleware.
func (s *Server) generationLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile := profileFromContext(r.Context())
		if s.GenerationLimiter == nil || profile == nil {
			next.ServeHTTP(w, r)
			return
		}
		if !s.GenerationLimiter.Allow(profile.ID) {
			w.Header().Set("Retry-After", strconv.Itoa(s.GenerationLimiter.retryAfterSeconds()))
			handleError(w, r, errors.NewRateLimitedError("too many generation requests, slow down"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
