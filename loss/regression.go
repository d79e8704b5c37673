package loss

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gnta-research/tourism-impact/models"
	"github.com/gnta-research/tourism-impact/monthseries"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrCrossSeriesUntrained = errors.New("cross-series regression has not been fit yet")
	ErrInputLenMismatch     = errors.New("nowcast and forecast inputs have different lengths")
)

// CrossSeries is an ordinary least-squares line relating the log of one
// monthly series to the log of another, fit over a recent sub-window. It backs
// the transaction-volume leg: nowcasts from observed arrivals and
// counterfactual forecasts from projected arrivals.
type CrossSeries struct {
	model   *models.OLSRegression
	r2      float64
	start   time.Time
	end     time.Time
	trained bool
}

// FitCrossSeries joins the predictor and response series by month, restricts
// them to months at or after windowStart, and fits log(response) on
// log(predictor).
func FitCrossSeries(predictor, response *monthseries.Series, windowStart time.Time) (*CrossSeries, error) {
	predJoined, respJoined, err := monthseries.Join(predictor, response)
	if err != nil {
		return nil, fmt.Errorf("unable to join series by month, %w", err)
	}

	windowEnd := predJoined.End().AddDate(0, 1, 0)
	predWin, err := predJoined.Window(windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("predictor window, %w", err)
	}
	respWin, err := respJoined.Window(windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("response window, %w", err)
	}

	predLog, err := predWin.Log()
	if err != nil {
		return nil, fmt.Errorf("predictor log transform, %w", err)
	}
	respLog, err := respWin.Log()
	if err != nil {
		return nil, fmt.Errorf("response log transform, %w", err)
	}

	m := predLog.Len()
	x := mat.NewDense(m, 1, predLog.Values())
	y := mat.NewDense(m, 1, respLog.Values())

	model, err := models.NewOLSRegression(nil)
	if err != nil {
		return nil, err
	}
	if err := model.Fit(x, y); err != nil {
		return nil, fmt.Errorf("unable to fit cross-series regression, %w", err)
	}
	r2, err := model.Score(x, y)
	if err != nil {
		return nil, err
	}

	return &CrossSeries{
		model:   model,
		r2:      r2,
		start:   predWin.Start(),
		end:     predWin.End(),
		trained: true,
	}, nil
}

// Intercept returns the fitted line intercept on the log scale.
func (c *CrossSeries) Intercept() float64 {
	return c.model.Intercept()
}

// Slope returns the fitted line slope, the log-log elasticity.
func (c *CrossSeries) Slope() float64 {
	return c.model.Coef()[0]
}

// RSquared returns the fit quality over the regression window.
func (c *CrossSeries) RSquared() float64 {
	return c.r2
}

// Window returns the month range the line was fit over.
func (c *CrossSeries) Window() (time.Time, time.Time) {
	return c.start, c.end
}

// predict evaluates the fitted line for log-scale inputs and exponentiates
// back to the natural scale.
func (c *CrossSeries) predict(logInputs []float64) ([]float64, error) {
	if c == nil || !c.trained {
		return nil, ErrCrossSeriesUntrained
	}
	x := mat.NewDense(len(logInputs), 1, logInputs)
	logOut, err := c.model.Predict(x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(logOut))
	for i, v := range logOut {
		out[i] = math.Exp(v)
	}
	return out, nil
}

// Nowcast predicts natural-scale response values from actually observed
// log-scale predictor values.
func (c *CrossSeries) Nowcast(logObserved []float64) ([]float64, error) {
	return c.predict(logObserved)
}

// Forecast predicts natural-scale response values from counterfactual
// log-scale predictor values.
func (c *CrossSeries) Forecast(logCounterfactual []float64) ([]float64, error) {
	return c.predict(logCounterfactual)
}

// PointLoss is the point loss estimate for a single month on the regression
// leg.
type PointLoss struct {
	Month    time.Time `json:"month"`
	Forecast float64   `json:"forecast"`
	Nowcast  float64   `json:"nowcast"`
	Loss     float64   `json:"loss"`
}

// PointSummary is the regression-leg loss: point estimates only, no sampled
// uncertainty, mirroring the count-leg Summary shape without intervals.
type PointSummary struct {
	Periods []PointLoss `json:"periods"`
	Total   float64     `json:"total"`
}

// EstimatePoint computes the forecast-minus-nowcast loss per month and summed
// across the horizon. Identical nowcast and counterfactual inputs yield zero
// loss for every period since both predictions derive from the same fitted
// line.
func (c *CrossSeries) EstimatePoint(months []time.Time, logObserved, logCounterfactual []float64) (*PointSummary, error) {
	if len(logObserved) != len(logCounterfactual) {
		return nil, fmt.Errorf("got %d observed and %d counterfactual, %w", len(logObserved), len(logCounterfactual), ErrInputLenMismatch)
	}
	if len(months) != len(logObserved) {
		return nil, fmt.Errorf("got %d months for %d observations, %w", len(months), len(logObserved), ErrMonthLenMismatch)
	}

	nowcast, err := c.Nowcast(logObserved)
	if err != nil {
		return nil, err
	}
	forecast, err := c.Forecast(logCounterfactual)
	if err != nil {
		return nil, err
	}

	summary := &PointSummary{
		Periods: make([]PointLoss, 0, len(months)),
	}
	for i := range months {
		l := forecast[i] - nowcast[i]
		summary.Periods = append(summary.Periods, PointLoss{
			Month:    months[i],
			Forecast: forecast[i],
			Nowcast:  nowcast[i],
			Loss:     l,
		})
		summary.Total += l
	}
	return summary, nil
}
