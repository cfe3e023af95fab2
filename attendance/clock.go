package attendance

import (
	"fmt"
	"time"
)

// DateLayout is the accepted format of date-only strings.
const DateLayout = "2006-01-02"

// Clock anchors attendance to a civil time zone. Recording and rate
// computation share one Clock so both agree on where a day starts.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(loc *time.Location) *Clock {
	return &Clock{loc: loc, now: time.Now}
}

// LoadClock resolves an IANA zone name such as "Asia/Kolkata".
func LoadClock(name string) (*Clock, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", name, err)
	}
	return NewClock(loc), nil
}

// WithNow returns a copy of c that reads the current time from now.
func (c *Clock) WithNow(now func() time.Time) *Clock {
	return &Clock{loc: c.loc, now: now}
}

func (c *Clock) Location() *time.Location { return c.loc }

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// ParseDate reads a YYYY-MM-DD string as civil midnight.
func (c *Clock) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, c.loc)
}

// DayBounds returns the half-open instant range [start, end) of the civil day containing t.
func (c *Clock) DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.In(c.loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
	end := time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, c.loc)
	return start, end
}

// DayKey formats the civil day containing t.
func (c *Clock) DayKey(t time.Time) string {
	return t.In(c.loc).Format(DateLayout)
}
