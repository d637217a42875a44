package quota

import (
	"context"
	"errors"
	"time"

	"echo-journal/models"
)

// ErrMonthlyLimitReached is returned when a free-tier user is at or above
// their monthly entry ceiling.
var ErrMonthlyLimitReached = errors.New("free tier monthly recording limit reached")

// EntryCounter provides the fresh per-submission count the gate reads.
type EntryCounter interface {
	CountRecordedSince(ctx context.Context, userID string, since time.Time) (int64, error)
}

// MonthlyGate decides whether a user may submit a new recording this
// billing period. Only the free tier is capped; the check is advisory and
// deliberately not transactional with the later entry insert, so two
// concurrent submissions can both pass at the ceiling.
type MonthlyGate struct {
	counter   EntryCounter
	freeLimit int
	now       func() time.Time
}

func NewMonthlyGate(counter EntryCounter, freeLimit int) *MonthlyGate {
	if freeLimit <= 0 {
		freeLimit = 5
	}
	return &MonthlyGate{counter: counter, freeLimit: freeLimit, now: time.Now}
}

// Allow returns ErrMonthlyLimitReached when the gate rejects the submission
// and nil when it may proceed.
func (g *MonthlyGate) Allow(ctx context.Context, userID, plan string) error {
	if plan != models.PlanFree {
		return nil
	}

	count, err := g.counter.CountRecordedSince(ctx, userID, MonthStart(g.now()))
	if err != nil {
		return err
	}
	if count >= int64(g.freeLimit) {
		return ErrMonthlyLimitReached
	}
	return nil
}

// MonthStart returns the first instant of t's calendar month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
