package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mkersting/aftermath/internal/core"
)

// Unavailable is the marker written for horizons whose exit fell
// outside the dataset.
const Unavailable = "N/A"

// CSVHeader returns the results header for a horizon set.
func CSVHeader(horizons []int) []string {
	header := []string{"Event", "Event Date", "Entry Date", "Entry Price"}
	for _, y := range horizons {
		header = append(header, fmt.Sprintf("%dY CAGR %%", y))
	}
	return header
}

// WriteCSV renders the table in the results file layout: one row per
// event, horizons as trailing columns, unavailable values as N/A.
func WriteCSV(w io.Writer, table *core.Table, horizons []int) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader(horizons)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, row := range table.Rows {
		record := []string{
			row.Event.Name,
			row.Event.Date.Format("2006-01-02"),
			row.EntryDate.Format("2006-01-02"),
			strconv.FormatFloat(row.EntryPrice, 'f', 2, 64),
		}
		for _, res := range row.Horizons {
			if res.Available {
				record = append(record, strconv.FormatFloat(res.CAGR, 'f', 2, 64))
			} else {
				record = append(record, Unavailable)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row for %q: %w", row.Event.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
