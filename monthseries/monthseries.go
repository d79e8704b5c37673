// Package monthseries provides the gap-free monthly time series that every
// pipeline step operates on. Months are normalized to the first day of the
// month in UTC and must advance by exactly one calendar month per observation.
package monthseries

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNoObservations = errors.New("no observations")
	ErrLenMismatch    = errors.New("months have a different length than values")
	ErrMonthGap       = errors.New("months are not consecutive")
	ErrNonPositive    = errors.New("non-positive value cannot be log transformed")
	ErrNotContiguous  = errors.New("series are not contiguous")
	ErrEmptyWindow    = errors.New("window contains no observations")
)

// Series is an ordered, gap-free monthly sequence of observations.
type Series struct {
	months []time.Time
	values []float64
}

// MonthOf normalizes a time to its month key, the first day of the month in UTC.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// New creates a Series from parallel month and value slices. Months are
// normalized with MonthOf and must be strictly increasing with no gaps.
func New(months []time.Time, values []float64) (*Series, error) {
	if len(values) == 0 {
		return nil, ErrNoObservations
	}
	if len(months) != len(values) {
		return nil, fmt.Errorf(
			"months have length of %d, but values have a length of %d, %w",
			len(months), len(values), ErrLenMismatch,
		)
	}

	mSeries := make([]time.Time, len(months))
	vSeries := make([]float64, len(values))
	for i, m := range months {
		mSeries[i] = MonthOf(m)
		if i > 0 && !mSeries[i].Equal(mSeries[i-1].AddDate(0, 1, 0)) {
			return nil, fmt.Errorf("at index %d, %w", i, ErrMonthGap)
		}
	}
	copy(vSeries, values)

	return &Series{months: mSeries, values: vSeries}, nil
}

// Len returns the number of monthly observations.
func (s *Series) Len() int {
	return len(s.values)
}

// Start returns the first month of the series.
func (s *Series) Start() time.Time {
	if s.Len() == 0 {
		return time.Time{}
	}
	return s.months[0]
}

// End returns the last month of the series.
func (s *Series) End() time.Time {
	if s.Len() == 0 {
		return time.Time{}
	}
	return s.months[len(s.months)-1]
}

// Months returns a copy of the month keys.
func (s *Series) Months() []time.Time {
	months := make([]time.Time, len(s.months))
	copy(months, s.months)
	return months
}

// Values returns a copy of the observation values.
func (s *Series) Values() []float64 {
	values := make([]float64, len(s.values))
	copy(values, s.values)
	return values
}

// At returns the month and value at index i.
func (s *Series) At(i int) (time.Time, float64) {
	return s.months[i], s.values[i]
}

// Copy returns a deep copy of the series.
func (s *Series) Copy() *Series {
	return &Series{months: s.Months(), values: s.Values()}
}

// Log returns a new series with the natural log of every value. Values must be
// strictly positive.
func (s *Series) Log() (*Series, error) {
	values := make([]float64, len(s.values))
	for i, v := range s.values {
		if v <= 0 {
			return nil, fmt.Errorf("value %f at index %d, %w", v, i, ErrNonPositive)
		}
		values[i] = math.Log(v)
	}
	return &Series{months: s.Months(), values: values}, nil
}

// Exp returns a new series with every value exponentiated.
func (s *Series) Exp() *Series {
	values := make([]float64, len(s.values))
	for i, v := range s.values {
		values[i] = math.Exp(v)
	}
	return &Series{months: s.Months(), values: values}
}

// Window returns the sub-series with months in [start, end). Both bounds are
// normalized with MonthOf.
func (s *Series) Window(start, end time.Time) (*Series, error) {
	start = MonthOf(start)
	end = MonthOf(end)

	lo := len(s.months)
	hi := len(s.months)
	for i, m := range s.months {
		if lo == len(s.months) && !m.Before(start) {
			lo = i
		}
		if !m.Before(end) {
			hi = i
			break
		}
	}
	if lo >= hi {
		return nil, fmt.Errorf("window [%s, %s), %w", start.Format("2006-01"), end.Format("2006-01"), ErrEmptyWindow)
	}
	return &Series{
		months: append([]time.Time{}, s.months[lo:hi]...),
		values: append([]float64{}, s.values[lo:hi]...),
	}, nil
}

// Append concatenates next onto the series. The first month of next must be the
// month immediately following the series end.
func (s *Series) Append(next *Series) (*Series, error) {
	if next == nil || next.Len() == 0 {
		return s.Copy(), nil
	}
	if !next.Start().Equal(s.End().AddDate(0, 1, 0)) {
		return nil, fmt.Errorf(
			"series ending %s followed by series starting %s, %w",
			s.End().Format("2006-01"), next.Start().Format("2006-01"), ErrNotContiguous,
		)
	}
	return &Series{
		months: append(s.Months(), next.Months()...),
		values: append(s.Values(), next.Values()...),
	}, nil
}
