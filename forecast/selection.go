package forecast

import (
	"errors"
	"fmt"

	"github.com/gnta-research/tourism-impact/monthseries"
)

var ErrNoCandidates = errors.New("no candidate specifications")

// Candidate is a named model specification entered into validation selection.
type Candidate struct {
	Name    string
	Options *Options
}

// DefaultCandidates returns the two default specifications, differing only in
// autoregressive order: one month of memory versus a full seasonal lag year.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{
			Name: "ar1",
			Options: &Options{
				AROrder:           1,
				SeasonalityOrders: DefaultSeasonalityOrders,
			},
		},
		{
			Name: "ar12",
			Options: &Options{
				AROrder:           12,
				SeasonalityOrders: DefaultSeasonalityOrders,
			},
		},
	}
}

// CandidateScore reports a candidate's error over the validation window.
type CandidateScore struct {
	Name          string  `json:"name"`
	ValidationMAE float64 `json:"validation_mae"`
}

// Selection is the outcome of validation-based model selection.
type Selection struct {
	// Chosen names the candidate with the lowest validation error.
	Chosen string `json:"chosen"`

	// Scores holds every candidate's validation error, computed over the same
	// window with the same metric.
	Scores []CandidateScore `json:"scores"`

	// Final is the chosen specification refit on train plus validation data.
	Final *Forecast `json:"-"`
}

// SelectByValidation fits every candidate on the training series, forecasts
// across the validation window, and keeps the candidate with the lowest mean
// absolute error on the model scale. Ties keep the earliest candidate. The
// winner is refit on the union of training and validation data before use.
func SelectByValidation(train, valid *monthseries.Series, candidates []Candidate) (*Selection, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	sel := &Selection{
		Scores: make([]CandidateScore, 0, len(candidates)),
	}

	var best *Candidate
	bestMAE := 0.0
	actual := valid.Values()
	for i := range candidates {
		c := candidates[i]

		f, err := New(c.Options)
		if err != nil {
			return nil, fmt.Errorf("candidate %q, %w", c.Name, err)
		}
		if err := f.Fit(train); err != nil {
			return nil, fmt.Errorf("candidate %q, %w", c.Name, err)
		}
		predicted, err := f.Predict(valid.Len())
		if err != nil {
			return nil, fmt.Errorf("candidate %q, %w", c.Name, err)
		}
		mae, err := MAE(predicted, actual)
		if err != nil {
			return nil, fmt.Errorf("candidate %q, %w", c.Name, err)
		}

		sel.Scores = append(sel.Scores, CandidateScore{Name: c.Name, ValidationMAE: mae})
		if best == nil || mae < bestMAE {
			best = &candidates[i]
			bestMAE = mae
		}
	}

	combined, err := train.Append(valid)
	if err != nil {
		return nil, fmt.Errorf("unable to combine train and validation series, %w", err)
	}
	final, err := New(best.Options)
	if err != nil {
		return nil, err
	}
	if err := final.Fit(combined); err != nil {
		return nil, fmt.Errorf("refit of %q on combined series, %w", best.Name, err)
	}

	sel.Chosen = best.Name
	sel.Final = final
	return sel, nil
}
