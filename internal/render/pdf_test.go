package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/mkersting/aftermath/internal/core"
)

func sampleTable() *core.Table {
	return &core.Table{
		Rows: []core.Row{
			{
				Event:      core.Event{Name: "Iraq invades Kuwait", Date: time.Date(1990, 8, 2, 0, 0, 0, 0, time.UTC)},
				EntryDate:  time.Date(1990, 8, 6, 0, 0, 0, 0, time.UTC),
				EntryPrice: 334.43,
				Horizons: []core.HorizonResult{
					{Years: 1, CAGR: 16.8, Available: true},
					{Years: 3, CAGR: 9.4, Available: true},
					{Years: 5, Available: false},
				},
			},
			{
				Event:      core.Event{Name: "September 11 attacks", Date: time.Date(2001, 9, 11, 0, 0, 0, 0, time.UTC)},
				EntryDate:  time.Date(2001, 9, 19, 0, 0, 0, 0, time.UTC),
				EntryPrice: 1016.10,
				Horizons: []core.HorizonResult{
					{Years: 1, CAGR: -17.3, Available: true},
					{Years: 3, CAGR: 3.6, Available: true},
					{Years: 5, CAGR: 5.1, Available: true},
				},
			},
		},
		Skipped: []core.SkippedEvent{
			{Event: core.Event{Name: "Recent event", Date: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}, Reason: "after last trading day"},
		},
	}
}

func TestReport(t *testing.T) {
	data, err := Report(sampleTable(), []int{1, 3, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PDF")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", data[:8])
	}
}

func TestReport_EmptyTable(t *testing.T) {
	data, err := Report(&core.Table{}, []int{1, 3, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("empty table should still render a valid document")
	}
}

func TestReport_AllNegative(t *testing.T) {
	table := &core.Table{
		Rows: []core.Row{
			{
				Event:      core.Event{Name: "ev", Date: time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC)},
				EntryDate:  time.Date(2000, 1, 5, 0, 0, 0, 0, time.UTC),
				EntryPrice: 100,
				Horizons: []core.HorizonResult{
					{Years: 1, CAGR: -12.5, Available: true},
				},
			},
		},
	}

	data, err := Report(table, []int{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PDF")
	}
}
