// Package pricing provides O(1) adjusted-close lookup per trading day.
package pricing

import (
	"fmt"
	"time"

	"github.com/mkersting/aftermath/internal/core"
)

// Index maps trading days to adjusted-close prices. Built once from the
// same observations as the calendar, read-only afterward.
type Index struct {
	prices map[time.Time]float64
}

// New builds the index. Non-positive prices are rejected here so the
// CAGR math downstream never has to guard against them. Duplicate dates
// are rejected the same way the calendar rejects them.
func New(obs []core.Observation) (*Index, error) {
	if len(obs) == 0 {
		return nil, core.ErrNoData
	}

	prices := make(map[time.Time]float64, len(obs))
	for _, o := range obs {
		if o.AdjClose <= 0 {
			return nil, core.WrapError(core.ErrInvalidPrice,
				fmt.Errorf("line %d: %s has price %v",
					o.Line, core.Day(o.Date).Format("2006-01-02"), o.AdjClose))
		}
		d := core.Day(o.Date)
		if _, ok := prices[d]; ok {
			return nil, core.WrapError(core.ErrMalformedInput,
				fmt.Errorf("duplicate trading date %s", d.Format("2006-01-02")))
		}
		prices[d] = o.AdjClose
	}

	return &Index{prices: prices}, nil
}

// PriceOn returns the adjusted close for the given trading day. A miss
// means the caller passed a day the calendar never produced.
func (i *Index) PriceOn(day time.Time) (float64, error) {
	p, ok := i.prices[core.Day(day)]
	if !ok {
		return 0, core.WrapError(core.ErrPriceNotFound,
			fmt.Errorf("no observation for %s", core.Day(day).Format("2006-01-02")))
	}
	return p, nil
}

// Len returns the number of priced trading days.
func (i *Index) Len() int {
	return len(i.prices)
}
