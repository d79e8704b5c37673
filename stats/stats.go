// Package stats provides the empirical quantile and outlier helpers shared by
// the loss estimation and pipeline steps.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrNoSamples     = errors.New("no samples")
	ErrBadLevel      = errors.New("interval level must be in (0, 1]")
	ErrBadPercentile = errors.New("percentile must be in [0, 1]")
)

// Quantile returns the empirical p-quantile of xs. The input is not modified.
func Quantile(p float64, xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrNoSamples
	}
	if p < 0 || p > 1 {
		return 0, fmt.Errorf("got %f, %w", p, ErrBadPercentile)
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil), nil
}

// Median returns the empirical median of xs.
func Median(xs []float64) (float64, error) {
	return Quantile(0.5, xs)
}

// CentralInterval returns the central interval bounds covering level of the
// sample mass, e.g. level 0.95 yields the 2.5th and 97.5th percentiles.
// Widening the level never shrinks the interval.
func CentralInterval(level float64, xs []float64) (float64, float64, error) {
	if level <= 0 || level > 1 {
		return 0, 0, fmt.Errorf("got %f, %w", level, ErrBadLevel)
	}
	tail := (1.0 - level) / 2.0
	lower, err := Quantile(tail, xs)
	if err != nil {
		return 0, 0, err
	}
	upper, err := Quantile(1.0-tail, xs)
	if err != nil {
		return 0, 0, err
	}
	return lower, upper, nil
}

// TukeyFences computes outlier bounds from the lower and upper percentiles of
// y widened by the inter-percentile range scaled by tukeyFactor.
func TukeyFences(y []float64, lowerPerc, upperPerc, tukeyFactor float64) (float64, float64) {
	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)

	yCopy := make([]float64, len(y))
	copy(yCopy, y)
	sort.Float64s(yCopy)
	lowerIdx := int(math.Floor(float64(len(yCopy)) * lowerPerc))
	upperIdx := int(math.Ceil(float64(len(yCopy)) * upperPerc))
	if upperIdx >= len(yCopy) {
		upperIdx = len(yCopy) - 1
	}

	lower := yCopy[lowerIdx]
	upper := yCopy[upperIdx]
	innerRange := upper - lower
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor
	return lower, upper
}

// DetectOutliers returns the indexes of values at or beyond the Tukey fences.
func DetectOutliers(y []float64, lowerPerc, upperPerc, tukeyFactor float64) []int {
	if len(y) == 0 {
		return nil
	}
	lower, upper := TukeyFences(y, lowerPerc, upperPerc, tukeyFactor)

	var outlierIdx []int
	for i := 0; i < len(y); i++ {
		if y[i] >= upper || y[i] <= lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}

// Winsorize returns a copy of y with values beyond the Tukey fences clamped to
// the fence values, along with the number of clamped points.
func Winsorize(y []float64, lowerPerc, upperPerc, tukeyFactor float64) ([]float64, int) {
	out := make([]float64, len(y))
	copy(out, y)
	if len(y) == 0 {
		return out, 0
	}

	lower, upper := TukeyFences(y, lowerPerc, upperPerc, tukeyFactor)
	var clamped int
	for i := range out {
		switch {
		case out[i] > upper:
			out[i] = upper
			clamped++
		case out[i] < lower:
			out[i] = lower
			clamped++
		}
	}
	return out, clamped
}
