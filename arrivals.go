// Package impact estimates the pandemic's cost to Georgian tourism from two
// monthly series. The arrivals pipeline projects a counterfactual from the
// pre-pandemic trend and measures lost arrivals with sampled uncertainty; the
// transactions pipeline relates card-transaction volume to arrivals with a
// log-log regression and measures lost volume as counterfactual forecast minus
// nowcast.
package impact

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gnta-research/tourism-impact/forecast"
	"github.com/gnta-research/tourism-impact/loss"
	"github.com/gnta-research/tourism-impact/monthseries"
	"github.com/gnta-research/tourism-impact/stats"
)

var ErrNoSeries = errors.New("no input series")

// EstimateArrivalsLoss runs the arrivals pipeline: log transform, split at the
// validation and pandemic cutoffs, candidate selection on the validation
// window, refit on all pre-pandemic data, trajectory simulation across the
// pandemic window, and sampled loss against the observed arrivals.
func EstimateArrivalsLoss(series *monthseries.Series, opt *Options) (*ArrivalsResult, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	if series == nil || series.Len() == 0 {
		return nil, ErrNoSeries
	}

	logged, err := series.Log()
	if err != nil {
		return nil, fmt.Errorf("arrivals log transform, %w", err)
	}

	split, err := logged.SplitAt(opt.ValidationStart, opt.PandemicStart)
	if err != nil {
		return nil, fmt.Errorf("arrivals split, %w", err)
	}

	var winsorized int
	train := split.Train
	if opt.Outliers != nil {
		clamped, n := stats.Winsorize(
			train.Values(),
			opt.Outliers.LowerPercentile,
			opt.Outliers.UpperPercentile,
			opt.Outliers.TukeyFactor,
		)
		winsorized = n
		if n > 0 {
			train, err = monthseries.New(train.Months(), clamped)
			if err != nil {
				return nil, err
			}
		}
	}

	sel, err := forecast.SelectByValidation(train, split.Valid, opt.Candidates)
	if err != nil {
		return nil, fmt.Errorf("arrivals model selection, %w", err)
	}

	horizon := split.Test.Len()
	logPoint, err := sel.Final.Predict(horizon)
	if err != nil {
		return nil, fmt.Errorf("arrivals counterfactual, %w", err)
	}

	rnd := rand.New(rand.NewPCG(opt.Seed, opt.Seed))
	logSamples, err := sel.Final.Simulate(horizon, opt.Samples, rnd)
	if err != nil {
		return nil, fmt.Errorf("arrivals simulation, %w", err)
	}

	testMonths := split.Test.Months()
	observed, err := series.Window(opt.PandemicStart, series.End().AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	lossSummary, err := loss.Estimate(testMonths, logSamples, observed.Values(), opt.IntervalLevel)
	if err != nil {
		return nil, fmt.Errorf("arrivals loss, %w", err)
	}

	counterfactual, err := summarizeCounterfactual(testMonths, logSamples, opt.IntervalLevel)
	if err != nil {
		return nil, err
	}

	eq, err := sel.Final.ModelEq()
	if err != nil {
		return nil, err
	}

	return &ArrivalsResult{
		Selection:        sel,
		Scores:           sel.Final.Scores(),
		ModelEq:          eq,
		WinsorizedPoints: winsorized,
		Counterfactual:   counterfactual,
		Loss:             lossSummary,

		logCounterfactual: logPoint,
	}, nil
}

// summarizeCounterfactual reduces the log-scale trajectories to a
// natural-scale median path with credible bounds per month.
func summarizeCounterfactual(months []time.Time, logSamples [][]float64, level float64) ([]PeriodForecast, error) {
	out := make([]PeriodForecast, 0, len(months))
	col := make([]float64, len(logSamples))
	for t := range months {
		for i, traj := range logSamples {
			col[i] = math.Exp(traj[t])
		}
		median, err := stats.Median(col)
		if err != nil {
			return nil, err
		}
		lower, upper, err := stats.CentralInterval(level, col)
		if err != nil {
			return nil, err
		}
		out = append(out, PeriodForecast{
			Month:  months[t],
			Median: median,
			Lower:  lower,
			Upper:  upper,
		})
	}
	return out, nil
}
