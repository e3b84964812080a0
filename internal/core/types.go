package core

import "time"

// Observation is a single raw (date, adjusted close) record from the
// price series input.
type Observation struct {
	Date     time.Time
	AdjClose float64
	Line     int // source line in the input, for error reporting
}

// Event represents a named geopolitical occurrence with a single
// calendar date.
type Event struct {
	Name string
	Date time.Time
}

// HorizonResult holds the outcome of one (event, horizon) evaluation.
// When Available is false the exit fell outside the known calendar and
// the exit/CAGR fields are meaningless.
type HorizonResult struct {
	Years     int
	ExitDate  time.Time
	ExitPrice float64
	CAGR      float64 // percent
	Available bool
}

// Row is one output row of the result table: the entry point shared by
// all horizons of a single event, plus the per-horizon results in the
// same order as the configured horizon set.
type Row struct {
	Event      Event
	EntryDate  time.Time
	EntryPrice float64
	Horizons   []HorizonResult
}

// SkippedEvent records an event that could not be evaluated at all
// because its entry date was unresolvable.
type SkippedEvent struct {
	Event  Event
	Reason string
}

// Table is the final result set. Rows follow the input event order.
type Table struct {
	Rows    []Row
	Skipped []SkippedEvent
}

// Day normalizes a timestamp to a bare UTC calendar date. All trading
// day comparisons in the calendar and price index go through this.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
