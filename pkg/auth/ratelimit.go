package auth

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter checks whether a request from the given identity should be
// allowed.
type RateLimiter interface {
	Allow(ctx context.Context, identity *Identity) error
}

// InProcessLimiter enforces a per-subject token-bucket rate limit in memory.
type InProcessLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	subjects map[string]*rate.Limiter
}

// NewInProcessLimiter creates a limiter allowing rps requests per second
// with the given burst per subject. A non-positive rps disables limiting.
func NewInProcessLimiter(rps float64, burst int) *InProcessLimiter {
	return &InProcessLimiter{
		limit:    rate.Limit(rps),
		burst:    burst,
		subjects: make(map[string]*rate.Limiter),
	}
}

// Allow checks if the request is within the rate limit.
// Fails open: a missing identity allows the request.
func (l *InProcessLimiter) Allow(_ context.Context, identity *Identity) error {
	if l.limit <= 0 || identity == nil {
		return nil
	}

	l.mu.Lock()
	lim, ok := l.subjects[identity.Subject]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.subjects[identity.Subject] = lim
	}
	l.mu.Unlock()

	if !lim.Allow() {
		return ErrTooManyRequests
	}
	return nil
}
