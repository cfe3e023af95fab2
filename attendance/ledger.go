package attendance

import (
	"context"
	"time"

	"presence_backend/models"
)

// Ledger is the persistent, append-only store of attendance entries.
type Ledger interface {
	// Append stores all entries atomically and returns how many were written.
	Append(ctx context.Context, entries []models.AttendanceEntry) (int, error)
	List(ctx context.Context, q models.LedgerQuery) ([]models.AttendanceEntry, error)
	// CountRange counts rows with from <= marked_at < to.
	CountRange(ctx context.Context, from, to time.Time) (present, total int, err error)
	DeleteAll(ctx context.Context) (int64, error)
}

// RateCache memoizes daily rates keyed by Clock.DayKey. Every entry is stamped
// with the day's generation as read before counting; Invalidate advances the
// generation, so a rate counted across a concurrent write is never served.
type RateCache interface {
	// Generation returns the current stamp for day. ok is false when the
	// cache cannot answer, and the rate is then neither read nor stored.
	Generation(ctx context.Context, day string) (gen string, ok bool)
	Get(ctx context.Context, day, gen string) (int, bool)
	Set(ctx context.Context, day, gen string, rate int)
	// Invalidate advances the given days, or every day when none are given.
	Invalidate(ctx context.Context, days ...string)
}

type noopCache struct{}

func (noopCache) Generation(context.Context, string) (string, bool) { return "", false }
func (noopCache) Get(context.Context, string, string) (int, bool)   { return 0, false }
func (noopCache) Set(context.Context, string, string, int)          {}
func (noopCache) Invalidate(context.Context, ...string)             {}
