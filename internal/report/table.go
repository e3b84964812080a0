package report

import (
	"fmt"
	"io"

	"github.com/mkersting/aftermath/internal/core"
)

// WriteText renders the table for console output.
func WriteText(w io.Writer, table *core.Table, horizons []int) {
	nameWidth := len("Event")
	for _, row := range table.Rows {
		if len(row.Event.Name) > nameWidth {
			nameWidth = len(row.Event.Name)
		}
	}

	fmt.Fprintf(w, "%-*s  %-10s  %-10s  %11s", nameWidth, "Event", "Event Date", "Entry Date", "Entry Price")
	for _, y := range horizons {
		fmt.Fprintf(w, "  %9s", fmt.Sprintf("%dY CAGR%%", y))
	}
	fmt.Fprintln(w)

	for _, row := range table.Rows {
		fmt.Fprintf(w, "%-*s  %s  %s  %11.2f",
			nameWidth,
			row.Event.Name,
			row.Event.Date.Format("2006-01-02"),
			row.EntryDate.Format("2006-01-02"),
			row.EntryPrice,
		)
		for _, res := range row.Horizons {
			if res.Available {
				fmt.Fprintf(w, "  %9.2f", res.CAGR)
			} else {
				fmt.Fprintf(w, "  %9s", Unavailable)
			}
		}
		fmt.Fprintln(w)
	}

	if len(table.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped %d event(s):\n", len(table.Skipped))
		for _, s := range table.Skipped {
			fmt.Fprintf(w, "  %s (%s): %s\n", s.Event.Name, s.Event.Date.Format("2006-01-02"), s.Reason)
		}
	}
}
