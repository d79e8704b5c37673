// Package loss turns counterfactual forecasts into loss estimates. The count
// leg works on a matrix of simulated log-scale trajectories and propagates
// uncertainty by taking quantiles over per-sample totals; the cross-series leg
// reports point estimates from a fitted log-log regression.
package loss

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gnta-research/tourism-impact/stats"
)

var (
	ErrNoSampleTrajectories = errors.New("no sample trajectories")
	ErrSampleLenMismatch    = errors.New("sample trajectory length does not match observed periods")
	ErrMonthLenMismatch     = errors.New("months do not match observed periods")
)

// Interval summarizes a difference distribution with its median and central
// interval bounds.
type Interval struct {
	Median float64 `json:"median"`
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
}

// PeriodLoss is the loss distribution summary for a single month.
type PeriodLoss struct {
	Month    time.Time `json:"month"`
	Observed float64   `json:"observed"`
	Interval
}

// Summary is the full loss estimate for the count series: one entry per month
// plus the total across the horizon.
type Summary struct {
	Level   float64      `json:"level"`
	Periods []PeriodLoss `json:"periods"`
	Total   Interval     `json:"total"`
}

// Estimate computes the sampled loss distribution from log-scale forecast
// trajectories against observed natural-scale values. Every sample is
// exponentiated before differencing since expectation does not commute with
// the log transform. The total interval comes from quantiles of per-sample
// row totals, never from summing per-period intervals.
func Estimate(months []time.Time, logSamples [][]float64, observed []float64, level float64) (*Summary, error) {
	if len(logSamples) == 0 {
		return nil, ErrNoSampleTrajectories
	}
	if len(months) != len(observed) {
		return nil, fmt.Errorf("got %d months for %d observations, %w", len(months), len(observed), ErrMonthLenMismatch)
	}

	nPeriods := len(observed)
	for i, traj := range logSamples {
		if len(traj) != nPeriods {
			return nil, fmt.Errorf("trajectory %d has %d periods, expected %d, %w", i, len(traj), nPeriods, ErrSampleLenMismatch)
		}
	}

	// per-sample natural-scale differences and row totals
	diffs := make([][]float64, len(logSamples))
	totals := make([]float64, len(logSamples))
	for i, traj := range logSamples {
		diff := make([]float64, nPeriods)
		for t := 0; t < nPeriods; t++ {
			diff[t] = math.Exp(traj[t]) - observed[t]
			totals[i] += diff[t]
		}
		diffs[i] = diff
	}

	summary := &Summary{
		Level:   level,
		Periods: make([]PeriodLoss, 0, nPeriods),
	}

	col := make([]float64, len(diffs))
	for t := 0; t < nPeriods; t++ {
		for i := range diffs {
			col[i] = diffs[i][t]
		}
		interval, err := newInterval(level, col)
		if err != nil {
			return nil, err
		}
		summary.Periods = append(summary.Periods, PeriodLoss{
			Month:    months[t],
			Observed: observed[t],
			Interval: interval,
		})
	}

	total, err := newInterval(level, totals)
	if err != nil {
		return nil, err
	}
	summary.Total = total
	return summary, nil
}

func newInterval(level float64, xs []float64) (Interval, error) {
	median, err := stats.Median(xs)
	if err != nil {
		return Interval{}, err
	}
	lower, upper, err := stats.CentralInterval(level, xs)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Median: median, Lower: lower, Upper: upper}, nil
}
