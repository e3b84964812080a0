package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mkersting/aftermath/internal/core"
)

// eventNameColumns and eventDateColumns are the accepted header names
// for the event list, in preference order. The original list uses
// "Event name" / "Time of Event".
var (
	eventNameColumns = []string{"event name", "event", "name"}
	eventDateColumns = []string{"time of event", "event date", "date"}
)

// rangeSeparators split multi-day events; the range start is the event
// date. A plain hyphen is not in this set since it appears inside ISO
// dates.
var rangeSeparators = []string{"–", "—"} // en dash, em dash

// LoadEvents parses the event list CSV. Rows keep their file order:
// the list is authored chronologically and row order is a downstream
// contract.
func LoadEvents(r io.Reader) ([]core.Event, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, core.WrapError(core.ErrMalformedInput, fmt.Errorf("reading header: %w", err))
	}

	nameCol := -1
	for _, name := range eventNameColumns {
		if nameCol = findColumn(header, name); nameCol >= 0 {
			break
		}
	}
	dateCol := -1
	for _, name := range eventDateColumns {
		if dateCol = findColumn(header, name); dateCol >= 0 {
			break
		}
	}
	if nameCol < 0 || dateCol < 0 {
		return nil, core.WrapError(core.ErrMalformedInput,
			fmt.Errorf("event header must name both event and date columns, got %v", header))
	}

	var events []core.Event
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, core.WrapError(core.ErrMalformedInput,
				fmt.Errorf("line %d: %w", line, err))
		}

		name := strings.TrimSpace(record[nameCol])
		if name == "" {
			return nil, core.WrapError(core.ErrMalformedInput,
				fmt.Errorf("line %d: empty event name", line))
		}

		date, err := parseDate(rangeStart(record[dateCol]))
		if err != nil {
			return nil, core.WrapError(core.ErrMalformedInput,
				fmt.Errorf("line %d: %w", line, err))
		}

		events = append(events, core.Event{Name: name, Date: core.Day(date)})
	}

	if len(events) == 0 {
		return nil, core.ErrNoData
	}
	return events, nil
}

// LoadEventsFile opens and parses an event list CSV.
func LoadEventsFile(path string) ([]core.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening events file: %w", err)
	}
	defer f.Close()
	return LoadEvents(f)
}

// rangeStart reduces a possible date range to its first date.
func rangeStart(s string) string {
	for _, sep := range rangeSeparators {
		if i := strings.Index(s, sep); i >= 0 {
			return s[:i]
		}
	}
	return s
}
