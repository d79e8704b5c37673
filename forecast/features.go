package forecast

import (
	"fmt"
	"math"
	"time"
)

const seasonalPeriod = 12.0

// featureLabels returns the design matrix column names in coefficient order.
func featureLabels(opt *Options) []string {
	labels := []string{"trend"}
	for k := 1; k <= opt.SeasonalityOrders; k++ {
		labels = append(labels,
			fmt.Sprintf("moy_%dsin", k),
			fmt.Sprintf("moy_%dcos", k),
		)
	}
	if opt.Holidays != nil {
		labels = append(labels, "holidays")
	}
	for k := 1; k <= opt.AROrder; k++ {
		labels = append(labels, fmt.Sprintf("lag_%d", k))
	}
	return labels
}

// featureRow produces a single design matrix row for the given month. trendIdx
// is the month offset from the start of the training series and lags holds the
// preceding values ordered most recent first.
func featureRow(month time.Time, trendIdx float64, lags []float64, opt *Options) []float64 {
	row := make([]float64, 0, 1+2*opt.SeasonalityOrders+1+len(lags))

	row = append(row, trendIdx)

	moy := float64(month.Month() - 1)
	for k := 1; k <= opt.SeasonalityOrders; k++ {
		rad := 2.0 * math.Pi * float64(k) * moy / seasonalPeriod
		row = append(row, math.Sin(rad), math.Cos(rad))
	}

	if opt.Holidays != nil {
		row = append(row, opt.Holidays.Count(month))
	}

	row = append(row, lags...)
	return row
}

// designMatrix builds the training rows and targets, one row per month from
// AROrder onward so every row has a full set of lags.
func designMatrix(months []time.Time, y []float64, opt *Options) ([][]float64, []float64) {
	p := opt.AROrder
	if len(y) <= p {
		return nil, nil
	}

	rows := make([][]float64, 0, len(y)-p)
	target := make([]float64, 0, len(y)-p)
	for i := p; i < len(y); i++ {
		rows = append(rows, featureRow(months[i], float64(i), lagsAt(y, i, p), opt))
		target = append(target, y[i])
	}
	return rows, target
}

// lagsAt returns the p values preceding index i, most recent first.
func lagsAt(y []float64, i, p int) []float64 {
	lags := make([]float64, 0, p)
	for k := 1; k <= p; k++ {
		lags = append(lags, y[i-k])
	}
	return lags
}
