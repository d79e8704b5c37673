package impact

import (
	"errors"
	"fmt"
	"time"

	"github.com/gnta-research/tourism-impact/forecast"
)

var (
	ErrNonPositiveSamples = errors.New("sample count must be positive")
	ErrBadIntervalLevel   = errors.New("interval level must be in (0, 1]")
	ErrNoCutoffs          = errors.New("validation and pandemic start months must be set")
)

// OutlierOptions controls optional winsorizing of the training window before
// fitting, clamping values beyond the Tukey fences.
type OutlierOptions struct {
	LowerPercentile float64
	UpperPercentile float64
	TukeyFactor     float64
}

func NewOutlierOptions() *OutlierOptions {
	return &OutlierOptions{
		LowerPercentile: 0.1,
		UpperPercentile: 0.9,
		TukeyFactor:     3.0,
	}
}

// Options configures the arrivals and transactions pipelines.
type Options struct {
	// ValidationStart begins the validation window used for candidate
	// selection.
	ValidationStart time.Time

	// PandemicStart begins the held-out window the loss is estimated over.
	PandemicStart time.Time

	// Candidates are the model specifications entered into validation
	// selection.
	Candidates []forecast.Candidate

	// Samples is the number of simulated forecast trajectories.
	Samples int

	// Seed fixes the random source for trajectory simulation so a rerun
	// reproduces identical estimates.
	Seed uint64

	// IntervalLevel is the central credible-interval mass, e.g. 0.95.
	IntervalLevel float64

	// RegressionWindowStart restricts the cross-series regression to months at
	// or after this month.
	RegressionWindowStart time.Time

	// Outliers optionally winsorizes the training window before fitting.
	Outliers *OutlierOptions
}

// NewDefaultOptions returns the pipeline defaults: validation from March 2019,
// pandemic window from March 2020, the default AR(1)/AR(12) candidates, and a
// 95% interval from 1000 seeded trajectories.
func NewDefaultOptions() *Options {
	return &Options{
		ValidationStart:       time.Date(2019, time.March, 1, 0, 0, 0, 0, time.UTC),
		PandemicStart:         time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
		Candidates:            forecast.DefaultCandidates(),
		Samples:               1000,
		Seed:                  1,
		IntervalLevel:         0.95,
		RegressionWindowStart: time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Validate runs basic validation on pipeline options
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	if o.ValidationStart.IsZero() || o.PandemicStart.IsZero() {
		return nil, ErrNoCutoffs
	}
	if o.Samples < 1 {
		return nil, fmt.Errorf("got %d, %w", o.Samples, ErrNonPositiveSamples)
	}
	if o.IntervalLevel <= 0 || o.IntervalLevel > 1 {
		return nil, fmt.Errorf("got %f, %w", o.IntervalLevel, ErrBadIntervalLevel)
	}
	if len(o.Candidates) == 0 {
		o.Candidates = forecast.DefaultCandidates()
	}
	return o, nil
}
