// Package report drives the full event x horizon evaluation and renders
// the resulting table.
package report

import (
	"errors"

	"github.com/mkersting/aftermath/internal/core"
	"github.com/mkersting/aftermath/internal/horizon"
	"go.uber.org/zap"
)

// DefaultHorizons is the standard forward horizon set, in years.
var DefaultHorizons = []int{1, 3, 5}

// Aggregator runs the evaluator over the full event list and assembles
// the result table.
type Aggregator struct {
	eval     *horizon.Evaluator
	horizons []int
	logger   *zap.Logger
}

// NewAggregator creates an aggregator. A nil or empty horizon set falls
// back to the default {1, 3, 5}.
func NewAggregator(eval *horizon.Evaluator, horizons []int, logger *zap.Logger) *Aggregator {
	if len(horizons) == 0 {
		horizons = DefaultHorizons
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		eval:     eval,
		horizons: horizons,
		logger:   logger,
	}
}

// Horizons returns the horizon set this aggregator evaluates.
func (a *Aggregator) Horizons() []int {
	return a.horizons
}

// Run evaluates every event in input order. Events whose entry date is
// unresolvable are skipped and recorded, not failed: the result is a
// table with gaps, never a crash. Any non-OUT_OF_RANGE error aborts the
// run since it means the calendar and price index disagree.
func (a *Aggregator) Run(events []core.Event) (*core.Table, error) {
	table := &core.Table{}

	for _, ev := range events {
		row, err := a.eval.EvaluateEvent(ev, a.horizons)
		if errors.Is(err, core.ErrOutOfRange) {
			a.logger.Warn("skipping event, entry date unresolvable",
				zap.String("event", ev.Name),
				zap.Time("date", ev.Date),
				zap.Error(err),
			)
			table.Skipped = append(table.Skipped, core.SkippedEvent{
				Event:  ev,
				Reason: err.Error(),
			})
			continue
		}
		if err != nil {
			return nil, err
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
