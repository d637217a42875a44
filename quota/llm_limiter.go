package quota

import (
	"context"
	"sync"
	"time"

	"echo-journal/config"
)

// LLMRateLimiter applies per-minute and per-day limits to generation calls
// made by bulk jobs, keeping a backfill run from saturating the external
// API. Counters are in-memory and reset on restart, which is acceptable for
// a single-instance deployment.
type LLMRateLimiter struct {
	mu sync.Mutex

	dailyLimit int
	usedToday  int
	dayKey     string

	interval time.Duration
	lastCall time.Time
}

// NewLLMRateLimiterFromConfig builds a limiter from the backfill section of
// config.yaml. Values of 0 or below disable the limit in that direction.
func NewLLMRateLimiterFromConfig(cfg config.AppConfig) *LLMRateLimiter {
	b := cfg.Backfill

	requestsPerDay := b.RequestsPerDay
	if requestsPerDay < 0 {
		requestsPerDay = 0
	}

	requestsPerMinute := b.RequestsPerMinute
	if requestsPerMinute < 0 {
		requestsPerMinute = 0
	}

	var interval time.Duration
	if requestsPerMinute > 0 {
		interval = time.Minute / time.Duration(requestsPerMinute)
	}

	return &LLMRateLimiter{
		dailyLimit: requestsPerDay,
		interval:   interval,
	}
}

// WaitAndReserve blocks until a call slot is available.
// - Daily limit exhausted: returns (false, nil); the caller should skip the
//   call.
// - Context cancelled while waiting: returns (false, error).
func (l *LLMRateLimiter) WaitAndReserve(ctx context.Context) (bool, error) {
	for {
		l.mu.Lock()

		now := time.Now().UTC()
		todayKey := now.Format("2006-01-02")
		if l.dayKey != todayKey {
			l.dayKey = todayKey
			l.usedToday = 0
		}

		if l.dailyLimit > 0 && l.usedToday >= l.dailyLimit {
			l.mu.Unlock()
			return false, nil
		}

		var delay time.Duration
		if l.interval > 0 && !l.lastCall.IsZero() {
			nextAllowed := l.lastCall.Add(l.interval)
			delay = time.Until(nextAllowed)
		}

		if delay <= 0 {
			l.usedToday++
			l.lastCall = now
			l.mu.Unlock()
			return true, nil
		}

		// Release the lock while waiting, then re-evaluate.
		l.mu.Unlock()
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}
