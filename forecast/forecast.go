// Package forecast fits the counterfactual projection model: a linear model of
// trend, month-of-year Fourier seasonality, and autoregressive lags fit on the
// pre-disruption history. Forecasts feed predicted values back through the lag
// buffer, and uncertainty comes from simulated trajectories with Gaussian
// innovations sized by the fit residual.
package forecast

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gnta-research/tourism-impact/models"
	"github.com/gnta-research/tourism-impact/monthseries"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrUninitializedForecast    = errors.New("uninitialized forecast")
	ErrUntrainedForecast        = errors.New("forecast has not been trained yet")
	ErrInsufficientTrainingData = errors.New("insufficient training data for the requested specification")
	ErrNoModelCoefficients      = errors.New("no model coefficients from fit")
	ErrNonPositiveHorizon       = errors.New("forecast horizon must be positive")
	ErrNonPositiveSamples       = errors.New("sample count must be positive")
	ErrNoRandSource             = errors.New("no random source for simulation")
)

// Forecast represents a single forecast model of a monthly series.
type Forecast struct {
	opt    *Options
	scores *Scores

	labels    []string
	intercept float64
	coef      []float64

	start    time.Time
	trainLen int
	tail     []float64
	residual []float64
	sigma    float64

	trained bool
}

// New creates a new forecast instance with the given options. If none are
// provided a default is used.
func New(opt *Options) (*Forecast, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Forecast{opt: opt}, nil
}

// Fit trains the model on the input series. The series is used on whatever
// scale it is given; the pipelines pass log-transformed values.
func (f *Forecast) Fit(s *monthseries.Series) error {
	if f == nil {
		return ErrUninitializedForecast
	}

	labels := featureLabels(f.opt)
	if s == nil || s.Len() <= f.opt.AROrder+len(labels)+1 {
		return fmt.Errorf("need more than %d observations, %w", f.opt.AROrder+len(labels)+1, ErrInsufficientTrainingData)
	}

	months := s.Months()
	y := s.Values()

	rows, target := designMatrix(months, y, f.opt)
	x := denseFromRows(rows)
	yMx := mat.NewDense(len(target), 1, target)

	var model models.Model
	var err error
	if f.opt.Regularization > 0 {
		lassoOpt := models.NewDefaultLassoOptions()
		lassoOpt.Lambda = f.opt.Regularization
		model, err = models.NewLassoRegression(lassoOpt)
	} else {
		model, err = models.NewOLSRegression(nil)
	}
	if err != nil {
		return err
	}
	if err := model.Fit(x, yMx); err != nil {
		return fmt.Errorf("unable to fit forecast model, %w", err)
	}

	f.labels = labels
	f.intercept = model.Intercept()
	f.coef = model.Coef()
	f.start = s.Start()
	f.trainLen = s.Len()
	f.tail = lagsAt(y, s.Len(), f.opt.AROrder)

	fitted, err := model.Predict(x)
	if err != nil {
		return fmt.Errorf("unable to get fitted values from training set, %w", err)
	}

	residual := make([]float64, len(target))
	floats.SubTo(residual, target, fitted)
	f.residual = residual
	f.sigma = stat.StdDev(residual, nil)

	scores, err := NewScores(fitted, target)
	if err != nil {
		return err
	}
	f.scores = scores
	f.trained = true

	return nil
}

// Predict produces the deterministic point forecast for horizon months past
// the end of the training series, feeding each prediction back into the lag
// buffer.
func (f *Forecast) Predict(horizon int) ([]float64, error) {
	if f == nil {
		return nil, ErrUninitializedForecast
	}
	if !f.trained {
		return nil, ErrUntrainedForecast
	}
	if horizon < 1 {
		return nil, ErrNonPositiveHorizon
	}

	lags := make([]float64, len(f.tail))
	copy(lags, f.tail)

	res := make([]float64, 0, horizon)
	for j := 0; j < horizon; j++ {
		yhat := f.step(j, lags)
		res = append(res, yhat)
		lags = pushLag(lags, yhat)
	}
	return res, nil
}

// Simulate draws nSamples forecast trajectories over the horizon. Each step
// adds a Gaussian innovation with the fit residual's standard deviation and
// propagates the noisy value through the lag buffer, so autoregressive
// uncertainty compounds over the horizon. A fixed-seed source reproduces
// identical trajectories.
func (f *Forecast) Simulate(horizon, nSamples int, rnd *rand.Rand) ([][]float64, error) {
	if f == nil {
		return nil, ErrUninitializedForecast
	}
	if !f.trained {
		return nil, ErrUntrainedForecast
	}
	if horizon < 1 {
		return nil, ErrNonPositiveHorizon
	}
	if nSamples < 1 {
		return nil, ErrNonPositiveSamples
	}
	if rnd == nil {
		return nil, ErrNoRandSource
	}

	samples := make([][]float64, nSamples)
	lags := make([]float64, len(f.tail))
	for i := 0; i < nSamples; i++ {
		copy(lags, f.tail)
		traj := make([]float64, horizon)
		for j := 0; j < horizon; j++ {
			val := f.step(j, lags) + rnd.NormFloat64()*f.sigma
			traj[j] = val
			lags = pushLag(lags, val)
		}
		samples[i] = traj
	}
	return samples, nil
}

// step evaluates the linear model for the j-th month past the training end.
func (f *Forecast) step(j int, lags []float64) float64 {
	month := f.start.AddDate(0, f.trainLen+j, 0)
	row := featureRow(month, float64(f.trainLen+j), lags, f.opt)
	return f.intercept + floats.Dot(f.coef, row)
}

// pushLag shifts a new value into the front of the lag buffer.
func pushLag(lags []float64, val float64) []float64 {
	if len(lags) == 0 {
		return lags
	}
	copy(lags[1:], lags[:len(lags)-1])
	lags[0] = val
	return lags
}

// Residuals returns the difference between the training data and the fit over
// the rows with a full lag window.
func (f *Forecast) Residuals() []float64 {
	if f == nil {
		return nil
	}
	res := make([]float64, len(f.residual))
	copy(res, f.residual)
	return res
}

// Sigma returns the standard deviation of the fit residual used to size the
// simulation innovations.
func (f *Forecast) Sigma() float64 {
	if f == nil {
		return 0
	}
	return f.sigma
}

// Intercept returns the intercept of the forecast model
func (f *Forecast) Intercept() float64 {
	if f == nil {
		return 0
	}
	return f.intercept
}

// Coefficients returns a forecast model map of coefficients keyed by the
// feature label
func (f *Forecast) Coefficients() (map[string]float64, error) {
	if f == nil {
		return nil, ErrUninitializedForecast
	}
	if len(f.labels) == 0 || len(f.coef) == 0 {
		return nil, ErrNoModelCoefficients
	}
	coef := make(map[string]float64)
	for i := 0; i < len(f.coef); i++ {
		coef[f.labels[i]] = f.coef[i]
	}
	return coef, nil
}

// ModelEq returns a string representation of the model linear equation in the
// format of y ~ b + m1x1 + m2x2 + ...
func (f *Forecast) ModelEq() (string, error) {
	if f == nil {
		return "", ErrUninitializedForecast
	}

	coef, err := f.Coefficients()
	if err != nil {
		return "", err
	}

	eq := fmt.Sprintf("y ~ %.2f", f.Intercept())
	for i := 0; i < len(f.coef); i++ {
		w := coef[f.labels[i]]
		if w == 0 {
			continue
		}
		eq += fmt.Sprintf("+%.2f*%s", w, f.labels[i])
	}
	return eq, nil
}

// Scores returns the fit scores for evaluating how well the resulting model
// fit the training data
func (f *Forecast) Scores() Scores {
	if f == nil || f.scores == nil {
		return Scores{}
	}
	return *f.scores
}

// Options returns the specification the model was built with.
func (f *Forecast) Options() *Options {
	if f == nil {
		return nil
	}
	return f.opt
}

func denseFromRows(rows [][]float64) *mat.Dense {
	m := len(rows)
	n := len(rows[0])
	data := make([]float64, 0, m*n)
	for _, row := range rows {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data)
}
