package impact

import (
	"time"

	"github.com/gnta-research/tourism-impact/forecast"
	"github.com/gnta-research/tourism-impact/loss"
)

// PeriodForecast is the natural-scale counterfactual projection for a single
// month with its credible bounds.
type PeriodForecast struct {
	Month  time.Time `json:"month"`
	Median float64   `json:"median"`
	Lower  float64   `json:"lower"`
	Upper  float64   `json:"upper"`
}

// ArrivalsResult holds the outcome of the arrivals pipeline.
type ArrivalsResult struct {
	// Selection reports every candidate's validation error and the chosen
	// specification.
	Selection *forecast.Selection `json:"selection"`

	// Scores are the refit model's training-fit scores on the log scale.
	Scores forecast.Scores `json:"fit_scores"`

	// ModelEq is the refit model's linear equation.
	ModelEq string `json:"model_eq"`

	// WinsorizedPoints counts training values clamped by outlier handling.
	WinsorizedPoints int `json:"winsorized_points"`

	// Counterfactual is the projected no-pandemic path with credible bounds,
	// one entry per pandemic month.
	Counterfactual []PeriodForecast `json:"counterfactual"`

	// Loss is the sampled lost-arrivals estimate.
	Loss *loss.Summary `json:"loss"`

	// logCounterfactual is the deterministic log-scale projection consumed by
	// the transactions pipeline.
	logCounterfactual []float64
}

// LogCounterfactual returns the deterministic counterfactual path on the log
// scale, one value per pandemic month.
func (r *ArrivalsResult) LogCounterfactual() []float64 {
	out := make([]float64, len(r.logCounterfactual))
	copy(out, r.logCounterfactual)
	return out
}

// TransactionsResult holds the outcome of the transactions pipeline. This leg
// reports point estimates only; no sampled uncertainty is propagated through
// the regression.
type TransactionsResult struct {
	// Intercept and Slope describe the fitted log-log line.
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`

	// R2 is the regression fit over the window.
	R2 float64 `json:"r_squared"`

	// WindowStart and WindowEnd bound the months the line was fit over.
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`

	// Loss is the forecast-minus-nowcast volume estimate.
	Loss *loss.PointSummary `json:"loss"`
}
