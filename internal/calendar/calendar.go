// Package calendar maps calendar dates onto the irregular sequence of
// trading days derived from a price series.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/mkersting/aftermath/internal/core"
)

// Calendar is the ordered, deduplicated sequence of trading days.
// Immutable once built.
type Calendar struct {
	days []time.Time
}

// New builds a calendar from raw observations. Input may be unsorted.
// Duplicate dates are rejected as malformed input rather than silently
// collapsed: two closes for one session means the feed is broken.
func New(obs []core.Observation) (*Calendar, error) {
	if len(obs) == 0 {
		return nil, core.ErrNoData
	}

	days := make([]time.Time, 0, len(obs))
	seen := make(map[time.Time]int, len(obs))
	for _, o := range obs {
		d := core.Day(o.Date)
		if prev, ok := seen[d]; ok {
			return nil, core.WrapError(core.ErrMalformedInput,
				fmt.Errorf("duplicate trading date %s (lines %d and %d)",
					d.Format("2006-01-02"), prev, o.Line))
		}
		seen[d] = o.Line
		days = append(days, d)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	return &Calendar{days: days}, nil
}

// Len returns the number of trading days.
func (c *Calendar) Len() int {
	return len(c.days)
}

// First returns the earliest trading day.
func (c *Calendar) First() time.Time {
	return c.days[0]
}

// Last returns the latest trading day.
func (c *Calendar) Last() time.Time {
	return c.days[len(c.days)-1]
}

// indexAtOrAfter returns the position of the first trading day that is
// not before d, or len(days) when d is past the end.
func (c *Calendar) indexAtOrAfter(d time.Time) int {
	return sort.Search(len(c.days), func(i int) bool {
		return !c.days[i].Before(d)
	})
}

// DayAtOffset returns the trading day n positions after the trading day
// equal to or immediately following date. It fails with OUT_OF_RANGE
// when date precedes the first trading day, when date falls past the
// last one, or when the offset walks off either end of the sequence.
// There is no extrapolation: a horizon past the end of data is
// unavailable, never estimated.
func (c *Calendar) DayAtOffset(date time.Time, n int) (time.Time, error) {
	d := core.Day(date)
	if d.Before(c.days[0]) {
		return time.Time{}, core.WrapError(core.ErrOutOfRange,
			fmt.Errorf("%s precedes first trading day %s",
				d.Format("2006-01-02"), c.days[0].Format("2006-01-02")))
	}

	base := c.indexAtOrAfter(d)
	if base == len(c.days) {
		return time.Time{}, core.WrapError(core.ErrOutOfRange,
			fmt.Errorf("%s is after last trading day %s",
				d.Format("2006-01-02"), c.Last().Format("2006-01-02")))
	}

	target := base + n
	if target < 0 || target >= len(c.days) {
		return time.Time{}, core.WrapError(core.ErrOutOfRange,
			fmt.Errorf("offset %d from %s leaves the calendar (%d trading days)",
				n, c.days[base].Format("2006-01-02"), len(c.days)))
	}

	return c.days[target], nil
}

// Nearest returns the trading day with minimal absolute distance to the
// given calendar date. Ties break toward the earlier day.
func (c *Calendar) Nearest(date time.Time) time.Time {
	d := core.Day(date)
	i := c.indexAtOrAfter(d)
	if i == 0 {
		return c.days[0]
	}
	if i == len(c.days) {
		return c.days[len(c.days)-1]
	}

	before, after := c.days[i-1], c.days[i]
	if d.Sub(before) <= after.Sub(d) {
		return before
	}
	return after
}
