// Package calendar models the Georgian public-holiday calendar and month spans
// used by the forecasting step. Holiday density varies month to month (the
// January holiday block, Easter cluster, the May and August holidays) and is
// exposed as a per-month count regressor.
package calendar

import (
	"errors"
	"time"

	"github.com/rickar/cal/v2"
)

var (
	ErrStartAfterEnd = errors.New("span start month is after end month")
	ErrUnsetMonth    = errors.New("unset span start or end month")
)

// Georgian public holidays with fixed Gregorian dates. The moveable Orthodox
// Easter cluster is omitted; month-level counts are dominated by the fixed
// holidays.
var (
	NewYear = &cal.Holiday{
		Name:  "New Year's Day",
		Type:  cal.ObservancePublic,
		Month: time.January,
		Day:   1,
		Func:  cal.CalcDayOfMonth,
	}
	NewYearSecond = &cal.Holiday{
		Name:  "Second Day of New Year",
		Type:  cal.ObservancePublic,
		Month: time.January,
		Day:   2,
		Func:  cal.CalcDayOfMonth,
	}
	OrthodoxChristmas = &cal.Holiday{
		Name:  "Orthodox Christmas",
		Type:  cal.ObservancePublic,
		Month: time.January,
		Day:   7,
		Func:  cal.CalcDayOfMonth,
	}
	Epiphany = &cal.Holiday{
		Name:  "Epiphany",
		Type:  cal.ObservancePublic,
		Month: time.January,
		Day:   19,
		Func:  cal.CalcDayOfMonth,
	}
	MothersDay = &cal.Holiday{
		Name:  "Mother's Day",
		Type:  cal.ObservancePublic,
		Month: time.March,
		Day:   3,
		Func:  cal.CalcDayOfMonth,
	}
	WomensDay = &cal.Holiday{
		Name:  "International Women's Day",
		Type:  cal.ObservancePublic,
		Month: time.March,
		Day:   8,
		Func:  cal.CalcDayOfMonth,
	}
	NationalUnityDay = &cal.Holiday{
		Name:  "National Unity Day",
		Type:  cal.ObservancePublic,
		Month: time.April,
		Day:   9,
		Func:  cal.CalcDayOfMonth,
	}
	VictoryDay = &cal.Holiday{
		Name:  "Victory Day",
		Type:  cal.ObservancePublic,
		Month: time.May,
		Day:   9,
		Func:  cal.CalcDayOfMonth,
	}
	SaintAndrewsDay = &cal.Holiday{
		Name:  "Saint Andrew's Day",
		Type:  cal.ObservancePublic,
		Month: time.May,
		Day:   12,
		Func:  cal.CalcDayOfMonth,
	}
	IndependenceDay = &cal.Holiday{
		Name:  "Independence Day",
		Type:  cal.ObservancePublic,
		Month: time.May,
		Day:   26,
		Func:  cal.CalcDayOfMonth,
	}
	Mariamoba = &cal.Holiday{
		Name:  "Dormition of the Mother of God",
		Type:  cal.ObservancePublic,
		Month: time.August,
		Day:   28,
		Func:  cal.CalcDayOfMonth,
	}
	Svetitskhovloba = &cal.Holiday{
		Name:  "Svetitskhovloba",
		Type:  cal.ObservancePublic,
		Month: time.October,
		Day:   14,
		Func:  cal.CalcDayOfMonth,
	}
	SaintGeorgesDay = &cal.Holiday{
		Name:  "Saint George's Day",
		Type:  cal.ObservancePublic,
		Month: time.November,
		Day:   23,
		Func:  cal.CalcDayOfMonth,
	}
)

// Calendar counts public holidays per calendar month.
type Calendar struct {
	holidays []*cal.Holiday
}

// NewGeorgian returns a calendar with the Georgian public holidays.
func NewGeorgian() *Calendar {
	return &Calendar{
		holidays: []*cal.Holiday{
			NewYear,
			NewYearSecond,
			OrthodoxChristmas,
			Epiphany,
			MothersDay,
			WomensDay,
			NationalUnityDay,
			VictoryDay,
			SaintAndrewsDay,
			IndependenceDay,
			Mariamoba,
			Svetitskhovloba,
			SaintGeorgesDay,
		},
	}
}

// Count returns the number of public holidays falling in the month of t.
func (c *Calendar) Count(t time.Time) float64 {
	var n float64
	for _, hol := range c.holidays {
		actual, _ := hol.Calc(t.Year())
		if actual.Month() == t.Month() {
			n += 1.0
		}
	}
	return n
}

// Counts returns the per-month holiday counts for a slice of months.
func (c *Calendar) Counts(months []time.Time) []float64 {
	counts := make([]float64, len(months))
	for i, m := range months {
		counts[i] = c.Count(m)
	}
	return counts
}

// Span marks a closed month range, such as the pandemic period.
type Span struct {
	Name  string
	Start time.Time
	End   time.Time
}

func NewSpan(name string, start, end time.Time) Span {
	return Span{
		Name:  name,
		Start: start,
		End:   end,
	}
}

func (s *Span) Valid() error {
	if s.Start.IsZero() || s.End.IsZero() {
		return ErrUnsetMonth
	}
	if s.Start.After(s.End) {
		return ErrStartAfterEnd
	}
	return nil
}

// Contains reports whether the month of t falls within the span.
func (s *Span) Contains(t time.Time) bool {
	m := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return !m.Before(s.Start) && !m.After(s.End)
}
