package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newDense(t *testing.T, rows [][]float64) *mat.Dense {
	t.Helper()
	m := len(rows)
	require.Greater(t, m, 0)
	n := len(rows[0])
	data := make([]float64, 0, m*n)
	for _, row := range rows {
		require.Len(t, row, n)
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data)
}

func testModel(t *testing.T, model Model, x, y mat.Matrix, intercept float64, coef []float64, tol float64) {
	t.Helper()
	err := model.Fit(x, y)
	require.Nil(t, err)

	assert.InDelta(t, intercept, model.Intercept(), tol)
	assert.InDeltaSlice(t, coef, model.Coef(), tol)

	r2, err := model.Score(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, r2, tol)
}

func TestOLSRegression(t *testing.T) {
	tol := 1e-5
	testData := map[string]struct {
		x         [][]float64
		y         []float64
		opt       *OLSOptions
		intercept float64
		coef      []float64
	}{
		"with intercept": {
			x: [][]float64{
				{0, 0},
				{3, 5},
				{9, 20},
				{12, 6},
				{15, 10},
			},
			y:         []float64{2, 31, 109, 62, 87},
			intercept: 2.0,
			coef:      []float64{3.0, 4.0},
		},
		"without intercept": {
			x: [][]float64{
				{0, 0},
				{3, 5},
				{9, 20},
				{12, 6},
				{15, 10},
			},
			y:    []float64{0, 29, 107, 60, 85},
			opt:  &OLSOptions{FitIntercept: false},
			coef: []float64{3.0, 4.0},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			model, err := NewOLSRegression(td.opt)
			require.Nil(t, err)

			x := newDense(t, td.x)
			y := mat.NewDense(len(td.y), 1, td.y)
			testModel(t, model, x, y, td.intercept, td.coef, tol)
		})
	}
}

func TestOLSRegressionErrors(t *testing.T) {
	model, err := NewOLSRegression(nil)
	require.Nil(t, err)

	assert.ErrorIs(t, model.Fit(nil, nil), ErrNoTrainingMatrix)
	assert.ErrorIs(t, model.Fit(mat.NewDense(2, 1, []float64{1, 2}), nil), ErrNoTargetMatrix)
	assert.ErrorIs(t,
		model.Fit(mat.NewDense(2, 1, []float64{1, 2}), mat.NewDense(3, 1, []float64{1, 2, 3})),
		ErrTargetLenMismatch,
	)

	_, err = model.Predict(nil)
	assert.ErrorIs(t, err, ErrNoDesignMatrix)
}

func TestLassoRegression(t *testing.T) {
	// lambda 0 converges to the OLS solution
	x := newDense(t, [][]float64{
		{0, 0},
		{3, 5},
		{9, 20},
		{12, 6},
		{15, 10},
	})
	y := mat.NewDense(5, 1, []float64{2, 31, 109, 62, 87})

	opt := NewDefaultLassoOptions()
	opt.Lambda = 0.0
	opt.Iterations = 10000
	opt.Tolerance = 1e-9

	model, err := NewLassoRegression(opt)
	require.Nil(t, err)
	testModel(t, model, x, y, 2.0, []float64{3.0, 4.0}, 1e-3)
}

func TestLassoOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *LassoOptions
		err      error
		expected *LassoOptions
	}{
		"nil": {nil, nil, NewDefaultLassoOptions()},
		"negative lambda": {
			opt: &LassoOptions{Lambda: -1},
			err: ErrNegativeLambda,
		},
		"negative iterations": {
			opt: &LassoOptions{Iterations: -1},
			err: ErrNegativeIterations,
		},
		"negative tolerance": {
			opt: &LassoOptions{Tolerance: -1e-3},
			err: ErrNegativeTolerance,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestSoftThreshold(t *testing.T) {
	testData := map[string]struct {
		x        float64
		gamma    float64
		expected float64
	}{
		"inside band":   {0.5, 1.0, 0.0},
		"above band":    {1.5, 1.0, 0.5},
		"below band":    {-1.5, 1.0, -0.5},
		"zero gamma":    {2.0, 0.0, 2.0},
		"negative zero": {-0.5, 1.0, 0.0},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			got := SoftThreshold(td.x, td.gamma)
			assert.InDelta(t, td.expected, got, 1e-12)
		})
	}
}
