package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultCapacity     = 20
	DefaultRefillPeriod = time.Minute
)

// Bucket is a fixed-capacity token bucket shared by all API requests.
//
// Refill is reset-to-full: once a full refill period has elapsed the count
// jumps back to capacity and the period restarts. There is no proportional
// top-up in between.
type Bucket struct {
	mu           sync.Mutex
	capacity     int
	tokens       int
	refillPeriod time.Duration
	lastRefill   time.Time
	now          func() time.Time
}

type Option func(*Bucket)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Bucket) { b.now = now }
}

func NewBucket(capacity int, refillPeriod time.Duration, opts ...Option) *Bucket {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if refillPeriod <= 0 {
		refillPeriod = DefaultRefillPeriod
	}

	b := &Bucket{
		capacity:     capacity,
		tokens:       capacity,
		refillPeriod: refillPeriod,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.lastRefill = b.now()
	return b
}

// TryConsume takes n tokens if available. The refill check, the availability
// check and the decrement run under one lock so concurrent callers can never
// overdraw the bucket.
func (b *Bucket) TryConsume(n int) bool {
	if n <= 0 {
		return true
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.refillIfNeeded()

	if b.tokens < n {
		return false
	}
	b.tokens -= n
	return true
}

// AvailableTokens reports the current count. It triggers the same refill
// check as TryConsume but never consumes.
func (b *Bucket) AvailableTokens() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refillIfNeeded()
	return b.tokens
}

func (b *Bucket) Capacity() int {
	return b.capacity
}

func (b *Bucket) RefillPeriod() time.Duration {
	return b.refillPeriod
}

// refillIfNeeded resets the bucket to full capacity once the refill period
// has elapsed. Caller must hold the lock.
func (b *Bucket) refillIfNeeded() {
	now := b.now()
	if now.Sub(b.lastRefill) >= b.refillPeriod {
		b.tokens = b.capacity
		b.lastRefill = now
	}
}

// Info is the read-only snapshot exposed by the status endpoint.
type Info struct {
	AvailableTokens     int `json:"available_tokens"`
	MaxCapacity         int `json:"max_capacity"`
	RefillPeriodSeconds int `json:"refill_period_seconds"`
}

func (b *Bucket) Info() Info {
	return Info{
		AvailableTokens:     b.AvailableTokens(),
		MaxCapacity:         b.capacity,
		RefillPeriodSeconds: int(b.refillPeriod.Seconds()),
	}
}
