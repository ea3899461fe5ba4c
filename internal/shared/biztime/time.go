// Package biztime is the single source of time for the stores and metrics.
// Values are stored and compared in UTC; the business timezone is only used
// when rendering timestamps for people.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const DefaultTimezone = "UTC"

var (
	locMu sync.RWMutex
	loc   = time.UTC
)

// Init sets the display timezone. An empty name selects UTC.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	l, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", tz, err)
	}
	locMu.Lock()
	loc = l
	locMu.Unlock()
	return nil
}

func Location() *time.Location {
	locMu.RLock()
	defer locMu.RUnlock()
	return loc
}

// NowUTC returns the current wall clock in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Format renders t in the display timezone.
func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}

// Clock abstracts "now" so that stores and metrics can be driven by tests.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// System is the wall clock in UTC.
var System Clock = ClockFunc(NowUTC)

// Fixed returns a clock frozen at t.
func Fixed(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
