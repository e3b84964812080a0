// Package ingest parses the tabular price and event inputs into the
// core types. All file I/O lives here, outside the computation core.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mkersting/aftermath/internal/core"
)

// priceColumns are accepted adjusted-close header names, in preference
// order. The raw feed uses "Adj Close"; "Close" is the fallback for
// series that only carry one price column.
var priceColumns = []string{"adj close", "adjusted close", "adj_close", "adjclose", "close"}

// LoadPrices parses the price series CSV. The first row must be a
// header containing a date column and an adjusted-close column. Rows
// are returned in file order; sorting is the calendar's job.
func LoadPrices(r io.Reader) ([]core.Observation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, core.WrapError(core.ErrMalformedInput, fmt.Errorf("reading header: %w", err))
	}

	dateCol := findColumn(header, "date")
	if dateCol < 0 {
		return nil, core.WrapError(core.ErrMalformedInput,
			fmt.Errorf("no date column in header %v", header))
	}
	priceCol := -1
	for _, name := range priceColumns {
		if priceCol = findColumn(header, name); priceCol >= 0 {
			break
		}
	}
	if priceCol < 0 {
		return nil, core.WrapError(core.ErrMalformedInput,
			fmt.Errorf("no adjusted close column in header %v", header))
	}

	var obs []core.Observation
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

		date, err := parseDate(record[dateCol])
		if err != nil {
			return nil, core.WrapError(core.ErrMalformedInput,
				fmt.Errorf("line %d: %w", line, err))
		}

		price, err := parsePrice(record[priceCol])
		if err != nil {
			return nil, core.WrapError(core.ErrMalformedInput,
				fmt.Errorf("line %d: %w", line, err))
		}

		obs = append(obs, core.Observation{
			Date:     date,
			AdjClose: price,
			Line:     line,
		})
	}

	if len(obs) == 0 {
		return nil, core.ErrNoData
	}
	return obs, nil
}

// LoadPricesFile opens and parses a price series CSV.
func LoadPricesFile(path string) ([]core.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening price file: %w", err)
	}
	defer f.Close()
	return LoadPrices(f)
}

func findColumn(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable price %q", s)
	}
	return v, nil
}
