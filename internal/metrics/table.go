package metrics

import (
	"strconv"

	"github.com/mkersting/aftermath/internal/core"
)

// RecordTable walks a computed result table and records the per-event
// and per-horizon counters from it.
func (r *Registry) RecordTable(table *core.Table) {
	for _, row := range table.Rows {
		r.RecordEvent("evaluated")
		for _, res := range row.Horizons {
			status := "available"
			if !res.Available {
				status = "unavailable"
			}
			r.RecordHorizon(strconv.Itoa(res.Years), status)
		}
	}
	for range table.Skipped {
		r.RecordEvent("skipped")
	}
}
