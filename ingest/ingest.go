// Package ingest loads the two tabular inputs into monthly series: the long
// arrivals file (one row per year-month) and the wide card-transaction file
// (one row per month, one column per year).
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gnta-research/tourism-impact/monthseries"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrNoRows        = errors.New("no data rows")
	ErrBadYear       = errors.New("unparseable year")
	ErrBadMonth      = errors.New("unparseable month")
	ErrBadValue      = errors.New("unparseable value")
	ErrInteriorGap   = errors.New("empty cell before the end of the series")
)

var monthNames = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// LoadArrivals reads the long-format monthly arrivals CSV from a file.
func LoadArrivals(path string) (*monthseries.Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := ReadArrivals(file)
	if err != nil {
		return nil, fmt.Errorf("%s, %w", path, err)
	}
	return s, nil
}

// ReadArrivals parses long-format rows of year, month number, and arrival
// count under a header row.
func ReadArrivals(r io.Reader) (*monthseries.Series, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	yearIdx, err := columnIndex(header, "year")
	if err != nil {
		return nil, err
	}
	monthIdx, err := columnIndex(header, "month")
	if err != nil {
		return nil, err
	}
	valueIdx, err := columnIndex(header, "arrivals", "trips", "value")
	if err != nil {
		return nil, err
	}

	var months []time.Time
	var values []float64
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[yearIdx]))
		if err != nil {
			return nil, fmt.Errorf("%q, %w", record[yearIdx], ErrBadYear)
		}
		month, err := parseMonth(record[monthIdx])
		if err != nil {
			return nil, err
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[valueIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("%q, %w", record[valueIdx], ErrBadValue)
		}

		months = append(months, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
		values = append(values, value)
	}
	if len(values) == 0 {
		return nil, ErrNoRows
	}

	return monthseries.New(months, values)
}

// LoadTransactions reads the wide-format monthly transaction-volume CSV from
// a file.
func LoadTransactions(path string) (*monthseries.Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := ReadTransactions(file)
	if err != nil {
		return nil, fmt.Errorf("%s, %w", path, err)
	}
	return s, nil
}

// ReadTransactions parses the wide format: a month-name column followed by one
// column per year, twelve rows in calendar order. Empty cells are only allowed
// at the tail of the final year, marking months without data yet.
func ReadTransactions(r io.Reader) (*monthseries.Series, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("expected a month column and at least one year column, %w", ErrMissingColumn)
	}

	years := make([]int, 0, len(header)-1)
	for _, h := range header[1:] {
		year, err := strconv.Atoi(strings.TrimSpace(h))
		if err != nil {
			return nil, fmt.Errorf("year column %q, %w", h, ErrBadYear)
		}
		years = append(years, year)
	}

	rows := make([][]string, 0, 12)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}
	if len(rows) != 12 {
		return nil, fmt.Errorf("expected 12 month rows, got %d, %w", len(rows), ErrNoRows)
	}
	for i, row := range rows {
		month, err := parseMonth(row[0])
		if err != nil {
			return nil, err
		}
		if int(month) != i+1 {
			return nil, fmt.Errorf("row %d holds %q, expected calendar order, %w", i, row[0], ErrBadMonth)
		}
	}

	var months []time.Time
	var values []float64
	ended := false
	for yi, year := range years {
		for mi := 0; mi < 12; mi++ {
			cell := strings.TrimSpace(rows[mi][yi+1])
			if cell == "" {
				ended = true
				continue
			}
			if ended {
				return nil, fmt.Errorf("%d-%02d, %w", year, mi+1, ErrInteriorGap)
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%q, %w", cell, ErrBadValue)
			}
			months = append(months, time.Date(year, time.Month(mi+1), 1, 0, 0, 0, 0, time.UTC))
			values = append(values, value)
		}
	}
	if len(values) == 0 {
		return nil, ErrNoRows
	}

	return monthseries.New(months, values)
}

func columnIndex(header []string, names ...string) (int, error) {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range names {
			if h == name {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%q, %w", names[0], ErrMissingColumn)
}

func parseMonth(s string) (time.Month, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("%d, %w", n, ErrBadMonth)
		}
		return time.Month(n), nil
	}
	if len(s) >= 3 {
		if m, exists := monthNames[s[:3]]; exists {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%q, %w", s, ErrBadMonth)
}
