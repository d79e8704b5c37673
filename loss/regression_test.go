package loss

import (
	"math"
	"testing"
	"time"

	"github.com/gnta-research/tourism-impact/monthseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genCrossSeries(t *testing.T, start time.Time, n int) (*monthseries.Series, *monthseries.Series) {
	t.Helper()
	ms := months(start, n)

	arrivals := make([]float64, n)
	volumes := make([]float64, n)
	for i := 0; i < n; i++ {
		moy := float64(ms[i].Month() - 1)
		arrivals[i] = 100000.0 + 5000.0*float64(i) + 30000.0*math.Sin(2.0*math.Pi*moy/12.0)
		// exact log-log relation: volume = 2.5 * arrivals^0.8
		volumes[i] = 2.5 * math.Pow(arrivals[i], 0.8)
	}

	arr, err := monthseries.New(ms, arrivals)
	require.Nil(t, err)
	vol, err := monthseries.New(ms, volumes)
	require.Nil(t, err)
	return arr, vol
}

func TestFitCrossSeries(t *testing.T) {
	start := time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC)
	arr, vol := genCrossSeries(t, start, 48)

	c, err := FitCrossSeries(arr, vol, start.AddDate(0, 12, 0))
	require.Nil(t, err)

	assert.InDelta(t, 0.8, c.Slope(), 1e-6)
	assert.InDelta(t, math.Log(2.5), c.Intercept(), 1e-6)
	assert.InDelta(t, 1.0, c.RSquared(), 1e-6)

	winStart, winEnd := c.Window()
	assert.Equal(t, start.AddDate(0, 12, 0), winStart)
	assert.Equal(t, start.AddDate(0, 47, 0), winEnd)
}

func TestCrossSeriesPredictRoundTrip(t *testing.T) {
	start := time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC)
	arr, vol := genCrossSeries(t, start, 48)

	c, err := FitCrossSeries(arr, vol, start)
	require.Nil(t, err)

	logArrivals := []float64{math.Log(200000.0)}
	nowcast, err := c.Nowcast(logArrivals)
	require.Nil(t, err)
	require.Len(t, nowcast, 1)
	assert.InDelta(t, 2.5*math.Pow(200000.0, 0.8), nowcast[0], 1.0)
}

func TestEstimatePointZeroLoss(t *testing.T) {
	// identical inputs for both legs must yield zero loss for every period
	start := time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC)
	arr, vol := genCrossSeries(t, start, 48)

	c, err := FitCrossSeries(arr, vol, start)
	require.Nil(t, err)

	horizon := months(start.AddDate(0, 48, 0), 6)
	logInputs := []float64{12.0, 12.1, 12.2, 12.3, 12.4, 12.5}

	summary, err := c.EstimatePoint(horizon, logInputs, logInputs)
	require.Nil(t, err)
	require.Len(t, summary.Periods, 6)
	for _, p := range summary.Periods {
		assert.Zero(t, p.Loss)
		assert.Equal(t, p.Forecast, p.Nowcast)
	}
	assert.Zero(t, summary.Total)
}

func TestEstimatePointLoss(t *testing.T) {
	start := time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC)
	arr, vol := genCrossSeries(t, start, 48)

	c, err := FitCrossSeries(arr, vol, start)
	require.Nil(t, err)

	horizon := months(start.AddDate(0, 48, 0), 2)
	observed := []float64{math.Log(50000.0), math.Log(60000.0)}
	counterfactual := []float64{math.Log(250000.0), math.Log(260000.0)}

	summary, err := c.EstimatePoint(horizon, observed, counterfactual)
	require.Nil(t, err)

	var total float64
	for _, p := range summary.Periods {
		assert.Greater(t, p.Loss, 0.0)
		assert.InDelta(t, p.Forecast-p.Nowcast, p.Loss, 1e-9)
		total += p.Loss
	}
	assert.InDelta(t, total, summary.Total, 1e-9)

	_, err = c.EstimatePoint(horizon, observed, counterfactual[:1])
	assert.ErrorIs(t, err, ErrInputLenMismatch)
	_, err = c.EstimatePoint(horizon[:1], observed, counterfactual)
	assert.ErrorIs(t, err, ErrMonthLenMismatch)
}
