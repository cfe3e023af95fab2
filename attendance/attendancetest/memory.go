// Package attendancetest provides in-memory stand-ins for the attendance ledger and rate cache.
package attendancetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"presence_backend/models"
)

// MemoryLedger is an attendance.Ledger backed by a slice.
type MemoryLedger struct {
	mu     sync.Mutex
	rows   []models.AttendanceEntry
	nextID int64

	// Err, when set, is returned by every method.
	Err error
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

func (l *MemoryLedger) Append(_ context.Context, entries []models.AttendanceEntry) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return 0, l.Err
	}
	for _, e := range entries {
		l.nextID++
		e.ID = l.nextID
		l.rows = append(l.rows, e)
	}
	return len(entries), nil
}

func (l *MemoryLedger) List(_ context.Context, q models.LedgerQuery) ([]models.AttendanceEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return nil, l.Err
	}
	out := []models.AttendanceEntry{}
	for _, e := range l.rows {
		if !inRange(e.MarkedAt, q.From, q.To) {
			continue
		}
		if q.ClassName != "" && e.ClassName != q.ClassName {
			continue
		}
		if q.Subject != "" && e.Subject != q.Subject {
			continue
		}
		if q.Day != "" && e.Day != q.Day {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].MarkedAt.Equal(out[j].MarkedAt) {
			return out[i].MarkedAt.After(out[j].MarkedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (l *MemoryLedger) CountRange(_ context.Context, from, to time.Time) (int, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return 0, 0, l.Err
	}
	var present, total int
	for _, e := range l.rows {
		if !inRange(e.MarkedAt, from, to) {
			continue
		}
		total++
		if e.Status.IsPresent() {
			present++
		}
	}
	return present, total, nil
}

func (l *MemoryLedger) DeleteAll(context.Context) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return 0, l.Err
	}
	n := int64(len(l.rows))
	l.rows = nil
	return n, nil
}

// Rows returns a copy of the stored entries in insertion order.
func (l *MemoryLedger) Rows() []models.AttendanceEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.AttendanceEntry(nil), l.rows...)
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

// MemoryCache is an attendance.RateCache backed by maps.
type MemoryCache struct {
	mu     sync.Mutex
	global int64
	days   map[string]int64
	rates  map[string]int
	Hits   int
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{days: map[string]int64{}, rates: map[string]int{}}
}

func (c *MemoryCache) Generation(_ context.Context, day string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation(day), true
}

func (c *MemoryCache) Get(_ context.Context, day, gen string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rate, ok := c.rates[day+"@"+gen]
	if ok {
		c.Hits++
	}
	return rate, ok
}

func (c *MemoryCache) Set(_ context.Context, day, gen string, rate int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates[day+"@"+gen] = rate
}

func (c *MemoryCache) Invalidate(_ context.Context, days ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(days) == 0 {
		c.global++
		return
	}
	for _, d := range days {
		c.days[d]++
	}
}

// Prime stores rate for day under its current generation.
func (c *MemoryCache) Prime(day string, rate int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates[day+"@"+c.generation(day)] = rate
}

// Has reports whether day has a rate servable under its current generation.
func (c *MemoryCache) Has(day string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.rates[day+"@"+c.generation(day)]
	return ok
}

func (c *MemoryCache) generation(day string) string {
	return fmt.Sprintf("%d.%d", c.global, c.days[day])
}
