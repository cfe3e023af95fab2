package attendance

import (
	"context"
	"fmt"
	"time"

	"presence_backend/models"
)

// Calculator answers read-side questions about the ledger.
type Calculator struct {
	ledger Ledger
	clock  *Clock
	opts   options
}

func NewCalculator(ledger Ledger, clock *Clock, opts ...Option) *Calculator {
	return &Calculator{ledger: ledger, clock: clock, opts: buildOptions(opts)}
}

// Percentage is floor(present/total*100), or 0 for an empty day.
func Percentage(present, total int) int {
	if total <= 0 {
		return 0
	}
	return present * 100 / total
}

// Rate returns the share of entries marked present on the civil day containing day.
func (c *Calculator) Rate(ctx context.Context, day time.Time) (int, error) {
	key := c.clock.DayKey(day)
	gen, cacheable := c.opts.cache.Generation(ctx, key)
	if cacheable {
		if rate, ok := c.opts.cache.Get(ctx, key, gen); ok {
			return rate, nil
		}
	}

	from, to := c.clock.DayBounds(day)
	present, total, err := c.ledger.CountRange(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("computing attendance rate for %s: %w", key, err)
	}

	rate := Percentage(present, total)
	if cacheable {
		c.opts.cache.Set(ctx, key, gen, rate)
	}
	return rate, nil
}

func (c *Calculator) Today(ctx context.Context) (int, error) {
	return c.Rate(ctx, c.clock.Now())
}

// DayTotal counts every entry recorded on the civil day containing day.
func (c *Calculator) DayTotal(ctx context.Context, day time.Time) (int, error) {
	from, to := c.clock.DayBounds(day)
	_, total, err := c.ledger.CountRange(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("counting attendance for %s: %w", c.clock.DayKey(day), err)
	}
	return total, nil
}

// History lists ledger rows matching f, most recent first.
func (c *Calculator) History(ctx context.Context, f models.AttendanceFilter) ([]models.AttendanceEntry, error) {
	q := models.LedgerQuery{
		ClassName: f.ClassName,
		Subject:   f.Subject,
		Day:       f.Day,
	}
	if f.Date != nil {
		q.From, q.To = c.clock.DayBounds(*f.Date)
	}

	entries, err := c.ledger.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing attendance: %w", err)
	}
	return entries, nil
}

func (c *Calculator) Clock() *Clock { return c.clock }
