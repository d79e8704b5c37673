package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	c := NewGeorgian()

	testData := map[string]struct {
		month    time.Time
		expected float64
	}{
		"january block": {
			month:    time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC),
			expected: 4,
		},
		"may": {
			month:    time.Date(2019, time.May, 1, 0, 0, 0, 0, time.UTC),
			expected: 3,
		},
		"no holidays": {
			month:    time.Date(2019, time.July, 1, 0, 0, 0, 0, time.UTC),
			expected: 0,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, c.Count(td.month))
		})
	}
}

func TestHolidayDates(t *testing.T) {
	c := NewGeorgian()
	for _, year := range []int{2019, 2020, 2021} {
		for _, hol := range c.holidays {
			actual, observed := hol.Calc(year)
			assert.Equal(t, year, actual.Year(), hol.Name)
			assert.Equal(t, hol.Month, actual.Month(), hol.Name)
			assert.Equal(t, hol.Day, actual.Day(), hol.Name)
			assert.False(t, observed.IsZero(), hol.Name)
		}
	}
}

func TestCounts(t *testing.T) {
	c := NewGeorgian()
	months := []time.Time{
		time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2019, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, []float64{4, 0}, c.Counts(months))
}

func TestSpan(t *testing.T) {
	testData := map[string]struct {
		span Span
		err  error
	}{
		"valid": {
			span: NewSpan(
				"pandemic",
				time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2020, time.August, 1, 0, 0, 0, 0, time.UTC),
			),
		},
		"unset": {
			span: Span{Name: "empty"},
			err:  ErrUnsetMonth,
		},
		"reversed": {
			span: NewSpan(
				"reversed",
				time.Date(2020, time.August, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
			),
			err: ErrStartAfterEnd,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			err := td.span.Valid()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestSpanContains(t *testing.T) {
	span := NewSpan(
		"pandemic",
		time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, time.August, 1, 0, 0, 0, 0, time.UTC),
	)

	assert.True(t, span.Contains(time.Date(2020, time.March, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, span.Contains(time.Date(2020, time.August, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, span.Contains(time.Date(2020, time.February, 28, 0, 0, 0, 0, time.UTC)))
	assert.False(t, span.Contains(time.Date(2020, time.September, 1, 0, 0, 0, 0, time.UTC)))
}
