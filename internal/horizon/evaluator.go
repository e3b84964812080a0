// Package horizon evaluates forward CAGR for events against the trading
// calendar and price index.
package horizon

import (
	"errors"
	"math"

	"github.com/mkersting/aftermath/internal/calendar"
	"github.com/mkersting/aftermath/internal/core"
	"github.com/mkersting/aftermath/internal/pricing"
)

const (
	// DefaultEntryLag is the number of sessions between an event and
	// its entry day, modelling settlement/reaction lag.
	DefaultEntryLag = 2

	// DefaultTradingDaysPerYear is the session count used to convert a
	// year horizon into a trading-day offset.
	DefaultTradingDaysPerYear = 252
)

// Evaluator resolves entry and exit points for (event, horizon) pairs.
// Horizons are measured as a fixed trading-day count from the entry day
// (round(years * sessions-per-year)), never as calendar-year arithmetic;
// the two conventions drift apart over leap years and holiday schedules
// and only the trading-day count is reproducible from the series alone.
type Evaluator struct {
	cal         *calendar.Calendar
	prices      *pricing.Index
	entryLag    int
	daysPerYear int
}

// New creates an evaluator with the default entry lag and session count.
func New(cal *calendar.Calendar, prices *pricing.Index) *Evaluator {
	return NewWithConvention(cal, prices, DefaultEntryLag, DefaultTradingDaysPerYear)
}

// NewWithConvention creates an evaluator with explicit conventions.
func NewWithConvention(cal *calendar.Calendar, prices *pricing.Index, entryLag, daysPerYear int) *Evaluator {
	if entryLag < 0 {
		entryLag = DefaultEntryLag
	}
	if daysPerYear <= 0 {
		daysPerYear = DefaultTradingDaysPerYear
	}
	return &Evaluator{
		cal:         cal,
		prices:      prices,
		entryLag:    entryLag,
		daysPerYear: daysPerYear,
	}
}

// EvaluateEvent resolves the entry point once and evaluates every
// horizon against it. An OUT_OF_RANGE error means the entry itself was
// unresolvable and the event must be skipped for all horizons; any
// other error is an internal consistency failure.
func (e *Evaluator) EvaluateEvent(ev core.Event, years []int) (core.Row, error) {
	entryDate, err := e.cal.DayAtOffset(ev.Date, e.entryLag)
	if err != nil {
		return core.Row{}, err
	}

	entryPrice, err := e.prices.PriceOn(entryDate)
	if err != nil {
		return core.Row{}, err
	}

	row := core.Row{
		Event:      ev,
		EntryDate:  entryDate,
		EntryPrice: entryPrice,
		Horizons:   make([]core.HorizonResult, 0, len(years)),
	}

	for _, y := range years {
		res, err := e.evaluateHorizon(row, y)
		if err != nil {
			return core.Row{}, err
		}
		row.Horizons = append(row.Horizons, res)
	}

	return row, nil
}

// evaluateHorizon resolves one horizon from an already-resolved entry.
// A horizon whose exit falls outside the calendar is unavailable; it
// does not affect the other horizons of the same event.
func (e *Evaluator) evaluateHorizon(row core.Row, years int) (core.HorizonResult, error) {
	offset := int(math.Round(float64(years) * float64(e.daysPerYear)))

	exitDate, err := e.cal.DayAtOffset(row.EntryDate, offset)
	if errors.Is(err, core.ErrOutOfRange) {
		return core.HorizonResult{Years: years, Available: false}, nil
	}
	if err != nil {
		return core.HorizonResult{}, err
	}

	exitPrice, err := e.prices.PriceOn(exitDate)
	if err != nil {
		return core.HorizonResult{}, err
	}

	return core.HorizonResult{
		Years:     years,
		ExitDate:  exitDate,
		ExitPrice: exitPrice,
		CAGR:      CAGR(row.EntryPrice, exitPrice, years),
		Available: true,
	}, nil
}

// CAGR computes the compound annual growth rate as a percentage.
// Prices are guaranteed positive by the index construction.
func CAGR(entryPrice, exitPrice float64, years int) float64 {
	return (math.Pow(exitPrice/entryPrice, 1/float64(years)) - 1) * 100
}
