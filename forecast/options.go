package forecast

import (
	"errors"
	"fmt"

	"github.com/gnta-research/tourism-impact/calendar"
)

const (
	DefaultAROrder           = 1
	DefaultSeasonalityOrders = 3

	// MaxSeasonalityOrders is the Nyquist limit for monthly data.
	MaxSeasonalityOrders = 6
)

var (
	ErrNegativeAROrder        = errors.New("negative autoregressive order")
	ErrSeasonalityOrders      = errors.New("seasonality orders must be between 0 and 6")
	ErrNegativeRegularization = errors.New("negative regularization")
)

// Options configures a single forecast model specification.
type Options struct {
	// AROrder is the number of previous months used as predictors of the
	// current month.
	AROrder int `json:"ar_order"`

	// SeasonalityOrders is the number of Fourier harmonic pairs over the
	// month-of-year cycle.
	SeasonalityOrders int `json:"seasonality_orders"`

	// Holidays optionally adds the per-month public-holiday count as a
	// regressor.
	Holidays *calendar.Calendar `json:"-"`

	// Regularization is the lasso L1 multiplier. 0 fits with OLS.
	Regularization float64 `json:"regularization"`
}

// Validate runs basic validation on forecast options
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	if o.AROrder < 0 {
		return nil, fmt.Errorf("got %d, %w", o.AROrder, ErrNegativeAROrder)
	}
	if o.SeasonalityOrders < 0 || o.SeasonalityOrders > MaxSeasonalityOrders {
		return nil, fmt.Errorf("got %d, %w", o.SeasonalityOrders, ErrSeasonalityOrders)
	}
	if o.Regularization < 0 {
		return nil, ErrNegativeRegularization
	}
	return o, nil
}

// NewDefaultOptions returns a default forecast specification
func NewDefaultOptions() *Options {
	return &Options{
		AROrder:           DefaultAROrder,
		SeasonalityOrders: DefaultSeasonalityOrders,
	}
}
