package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/mkersting/aftermath/internal/core"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func obs(dates ...time.Time) []core.Observation {
	out := make([]core.Observation, len(dates))
	for i, d := range dates {
		out[i] = core.Observation{Date: d, AdjClose: 100, Line: i + 2}
	}
	return out
}

// Mon 6th through Fri 10th, then Mon 13th through Wed 15th. The weekend
// gap is what the offset logic has to step over.
func weekCalendar(t *testing.T) *Calendar {
	t.Helper()
	cal, err := New(obs(
		day(2020, time.January, 6),
		day(2020, time.January, 7),
		day(2020, time.January, 8),
		day(2020, time.January, 9),
		day(2020, time.January, 10),
		day(2020, time.January, 13),
		day(2020, time.January, 14),
		day(2020, time.January, 15),
	))
	if err != nil {
		t.Fatalf("building calendar: %v", err)
	}
	return cal
}

func TestNew_SortsUnsortedInput(t *testing.T) {
	cal, err := New(obs(
		day(2020, time.January, 8),
		day(2020, time.January, 6),
		day(2020, time.January, 7),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cal.First().Equal(day(2020, time.January, 6)) {
		t.Errorf("first = %v, want Jan 6", cal.First())
	}
	if !cal.Last().Equal(day(2020, time.January, 8)) {
		t.Errorf("last = %v, want Jan 8", cal.Last())
	}
}

func TestNew_RejectsDuplicateDates(t *testing.T) {
	_, err := New(obs(
		day(2020, time.January, 6),
		day(2020, time.January, 7),
		day(2020, time.January, 6),
	))
	if !errors.Is(err, core.ErrMalformedInput) {
		t.Fatalf("expected MALFORMED_INPUT, got %v", err)
	}
}

func TestNew_RejectsEmptySeries(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, core.ErrNoData) {
		t.Fatalf("expected NO_DATA, got %v", err)
	}
}

func TestDayAtOffset_FromTradingDay(t *testing.T) {
	cal := weekCalendar(t)

	got, err := cal.DayAtOffset(day(2020, time.January, 9), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Jan 9 + 2 sessions skips the weekend: Jan 10, Jan 13.
	if !got.Equal(day(2020, time.January, 13)) {
		t.Errorf("got %v, want Jan 13", got)
	}
}

func TestDayAtOffset_SnapsForwardFromNonTradingDay(t *testing.T) {
	cal := weekCalendar(t)

	// Saturday the 11th snaps to Monday the 13th, then walks 1 more.
	got, err := cal.DayAtOffset(day(2020, time.January, 11), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(day(2020, time.January, 14)) {
		t.Errorf("got %v, want Jan 14", got)
	}
}

func TestDayAtOffset_ZeroOffsetIsIdentityOnTradingDays(t *testing.T) {
	cal := weekCalendar(t)

	got, err := cal.DayAtOffset(day(2020, time.January, 7), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(day(2020, time.January, 7)) {
		t.Errorf("got %v, want Jan 7", got)
	}
}

func TestDayAtOffset_BeforeFirstTradingDay(t *testing.T) {
	cal := weekCalendar(t)

	_, err := cal.DayAtOffset(day(2020, time.January, 3), 1)
	if !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("expected OUT_OF_RANGE, got %v", err)
	}
}

func TestDayAtOffset_AfterLastTradingDay(t *testing.T) {
	cal := weekCalendar(t)

	_, err := cal.DayAtOffset(day(2020, time.February, 1), 0)
	if !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("expected OUT_OF_RANGE, got %v", err)
	}
}

func TestDayAtOffset_PastEnd(t *testing.T) {
	cal := weekCalendar(t)

	_, err := cal.DayAtOffset(day(2020, time.January, 14), 2)
	if !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("expected OUT_OF_RANGE, got %v", err)
	}

	// Exactly the last day still resolves.
	got, err := cal.DayAtOffset(day(2020, time.January, 14), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(day(2020, time.January, 15)) {
		t.Errorf("got %v, want Jan 15", got)
	}
}

func TestDayAtOffset_Deterministic(t *testing.T) {
	cal := weekCalendar(t)

	first, err := cal.DayAtOffset(day(2020, time.January, 6), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cal.DayAtOffset(day(2020, time.January, 6), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("same inputs gave %v then %v", first, second)
	}
}

func TestNearest(t *testing.T) {
	cal := weekCalendar(t)

	tests := []struct {
		name string
		date time.Time
		want time.Time
	}{
		{"exact trading day", day(2020, time.January, 8), day(2020, time.January, 8)},
		{"saturday closer to friday", day(2020, time.January, 11), day(2020, time.January, 10)},
		{"sunday closer to monday", day(2020, time.January, 12), day(2020, time.January, 13)},
		{"before range clamps to first", day(2019, time.December, 25), day(2020, time.January, 6)},
		{"after range clamps to last", day(2020, time.March, 1), day(2020, time.January, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cal.Nearest(tt.date)
			if !got.Equal(tt.want) {
				t.Errorf("Nearest(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestNearest_TieBreaksEarlier(t *testing.T) {
	cal, err := New(obs(
		day(2020, time.January, 6),
		day(2020, time.January, 8),
	))
	if err != nil {
		t.Fatalf("building calendar: %v", err)
	}

	// Jan 7 is equidistant; the earlier day wins.
	got := cal.Nearest(day(2020, time.January, 7))
	if !got.Equal(day(2020, time.January, 6)) {
		t.Errorf("tie should prefer earlier day, got %v", got)
	}
}
