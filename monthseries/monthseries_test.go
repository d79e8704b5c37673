package monthseries

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func genMonths(start time.Time, n int) []time.Time {
	months := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		months = append(months, start.AddDate(0, i, 0))
	}
	return months
}

func TestNew(t *testing.T) {
	testData := map[string]struct {
		months   []time.Time
		values   []float64
		expected *Series
		err      error
	}{
		"no observations": {
			err: ErrNoObservations,
		},
		"length mismatch": {
			months: genMonths(month(2019, time.January), 3),
			values: []float64{1, 2},
			err:    ErrLenMismatch,
		},
		"gap": {
			months: []time.Time{month(2019, time.January), month(2019, time.March)},
			values: []float64{1, 2},
			err:    ErrMonthGap,
		},
		"duplicate month": {
			months: []time.Time{month(2019, time.January), month(2019, time.January)},
			values: []float64{1, 2},
			err:    ErrMonthGap,
		},
		"valid": {
			months: genMonths(month(2019, time.January), 2),
			values: []float64{1, 2},
			expected: &Series{
				months: genMonths(month(2019, time.January), 2),
				values: []float64{1, 2},
			},
		},
		"normalizes to first of month": {
			months: []time.Time{
				time.Date(2019, time.January, 15, 3, 0, 0, 0, time.UTC),
				time.Date(2019, time.February, 28, 0, 0, 0, 0, time.UTC),
			},
			values: []float64{1, 2},
			expected: &Series{
				months: genMonths(month(2019, time.January), 2),
				values: []float64{1, 2},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			s, err := New(td.months, td.values)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, s)
		})
	}
}

func TestLogExp(t *testing.T) {
	s, err := New(genMonths(month(2019, time.January), 3), []float64{1, math.E, math.E * math.E})
	require.Nil(t, err)

	logged, err := s.Log()
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{0, 1, 2}, logged.Values(), 1e-12)
	assert.InDeltaSlice(t, s.Values(), logged.Exp().Values(), 1e-12)

	neg, err := New(genMonths(month(2019, time.January), 2), []float64{1, 0})
	require.Nil(t, err)
	_, err = neg.Log()
	assert.ErrorIs(t, err, ErrNonPositive)
}

func TestWindow(t *testing.T) {
	s, err := New(genMonths(month(2019, time.January), 12), []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11})
	require.Nil(t, err)

	testData := map[string]struct {
		start    time.Time
		end      time.Time
		expected []float64
		err      error
	}{
		"interior": {
			start:    month(2019, time.March),
			end:      month(2019, time.June),
			expected: []float64{2, 3, 4},
		},
		"full range": {
			start:    month(2018, time.June),
			end:      month(2020, time.June),
			expected: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
		},
		"empty": {
			start: month(2020, time.March),
			end:   month(2020, time.June),
			err:   ErrEmptyWindow,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			w, err := s.Window(td.start, td.end)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, w.Values())
		})
	}
}

func TestSplitAt(t *testing.T) {
	s, err := New(genMonths(month(2015, time.January), 60), genValues(60))
	require.Nil(t, err)

	testData := map[string]struct {
		validStart time.Time
		testStart  time.Time
		lens       [3]int
		err        error
	}{
		"valid": {
			validStart: month(2019, time.January),
			testStart:  month(2019, time.July),
			lens:       [3]int{48, 6, 6},
		},
		"cutoffs out of order": {
			validStart: month(2019, time.July),
			testStart:  month(2019, time.January),
			err:        ErrCutoffOrder,
		},
		"cutoff before series": {
			validStart: month(2014, time.July),
			testStart:  month(2019, time.July),
			err:        ErrCutoffOutOfRange,
		},
		"cutoff after series": {
			validStart: month(2019, time.January),
			testStart:  month(2020, time.July),
			err:        ErrCutoffOutOfRange,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			sp, err := s.SplitAt(td.validStart, td.testStart)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.lens[0], sp.Train.Len())
			assert.Equal(t, td.lens[1], sp.Valid.Len())
			assert.Equal(t, td.lens[2], sp.Test.Len())

			// partitions are contiguous, non-overlapping, and reconstruct the series
			recon, err := sp.Train.Append(sp.Valid)
			require.Nil(t, err)
			recon, err = recon.Append(sp.Test)
			require.Nil(t, err)
			assert.Equal(t, s, recon)
		})
	}
}

func TestJoin(t *testing.T) {
	a, err := New(genMonths(month(2019, time.January), 6), []float64{0, 1, 2, 3, 4, 5})
	require.Nil(t, err)
	b, err := New(genMonths(month(2019, time.April), 6), []float64{10, 11, 12, 13, 14, 15})
	require.Nil(t, err)

	aj, bj, err := Join(a, b)
	require.Nil(t, err)
	assert.Equal(t, aj.Months(), bj.Months())
	assert.Equal(t, []float64{3, 4, 5}, aj.Values())
	assert.Equal(t, []float64{10, 11, 12}, bj.Values())

	c, err := New(genMonths(month(2021, time.January), 3), []float64{1, 2, 3})
	require.Nil(t, err)
	_, _, err = Join(a, c)
	assert.ErrorIs(t, err, ErrNoOverlap)
}

func genValues(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i)
	}
	return values
}
