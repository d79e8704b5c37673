package impact

import (
	"errors"
	"fmt"

	"github.com/gnta-research/tourism-impact/loss"
	"github.com/gnta-research/tourism-impact/monthseries"
)

var (
	ErrNoArrivalsResult = errors.New("no arrivals result for counterfactual input")
	ErrHorizonMismatch  = errors.New("counterfactual path does not cover the pandemic arrivals window")
)

// EstimateTransactionsLoss runs the transactions pipeline: fit a log-log OLS
// line of transaction volume on arrivals over a recent pre-pandemic window,
// nowcast pandemic volume from the actually observed arrivals, forecast it
// from the counterfactual arrivals path, and report the point difference.
func EstimateTransactionsLoss(volumes, arrivals *monthseries.Series, arrRes *ArrivalsResult, opt *Options) (*TransactionsResult, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	if volumes == nil || arrivals == nil {
		return nil, ErrNoSeries
	}
	if arrRes == nil {
		return nil, ErrNoArrivalsResult
	}

	arrPre, err := arrivals.Window(arrivals.Start(), opt.PandemicStart)
	if err != nil {
		return nil, fmt.Errorf("pre-pandemic arrivals window, %w", err)
	}
	volPre, err := volumes.Window(volumes.Start(), opt.PandemicStart)
	if err != nil {
		return nil, fmt.Errorf("pre-pandemic volume window, %w", err)
	}

	cross, err := loss.FitCrossSeries(arrPre, volPre, opt.RegressionWindowStart)
	if err != nil {
		return nil, fmt.Errorf("cross-series regression, %w", err)
	}

	arrTest, err := arrivals.Window(opt.PandemicStart, arrivals.End().AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("pandemic arrivals window, %w", err)
	}
	arrTestLog, err := arrTest.Log()
	if err != nil {
		return nil, fmt.Errorf("pandemic arrivals log transform, %w", err)
	}

	counterfactual := arrRes.LogCounterfactual()
	if len(counterfactual) < arrTest.Len() {
		return nil, fmt.Errorf("got %d counterfactual months for %d pandemic months, %w",
			len(counterfactual), arrTest.Len(), ErrHorizonMismatch)
	}
	counterfactual = counterfactual[:arrTest.Len()]

	summary, err := cross.EstimatePoint(arrTest.Months(), arrTestLog.Values(), counterfactual)
	if err != nil {
		return nil, fmt.Errorf("transactions loss, %w", err)
	}

	winStart, winEnd := cross.Window()
	return &TransactionsResult{
		Intercept:   cross.Intercept(),
		Slope:       cross.Slope(),
		R2:          cross.RSquared(),
		WindowStart: winStart,
		WindowEnd:   winEnd,
		Loss:        summary,
	}, nil
}
