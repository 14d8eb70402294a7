package linmodel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/statkit/cgm"
	"github.com/statkit/cgm/linmodel"
)

// TestFit_Validation covers the eager input checks.
func TestFit_Validation(t *testing.T) {
	_, err := linmodel.Fit(nil, nil)
	assert.ErrorIs(t, err, cgm.ErrInvalidInput, "nil design must error")

	x := mat.NewDense(3, 1, []float64{1, 2, 3})
	_, err = linmodel.Fit(x, []float64{1, 2})
	assert.ErrorIs(t, err, cgm.ErrInvalidInput, "row mismatch must error")

	x = mat.NewDense(2, 2, []float64{1, 1, 1, 2})
	_, err = linmodel.Fit(x, []float64{1, 2})
	assert.ErrorIs(t, err, cgm.ErrInvalidInput, "n <= k must error")
}

// TestFit_ExactLine fits points lying exactly on y = 1 + 2x and expects the
// coefficients back with zero residuals.
func TestFit_ExactLine(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		1, 0,
		1, 1,
		1, 2,
		1, 3,
	})
	y := []float64{1, 3, 5, 7}

	m, err := linmodel.Fit(x, y)
	require.NoError(t, err)

	require.Equal(t, 2, m.Rank())
	assert.InDelta(t, 1.0, m.Coefficients()[0], 1e-10, "intercept")
	assert.InDelta(t, 2.0, m.Coefficients()[1], 1e-10, "slope")
	for i, r := range m.Residuals() {
		assert.InDelta(t, 0.0, r, 1e-10, "residual %d", i)
	}
	assert.Equal(t, 4, m.NumObs())
	assert.Empty(t, m.Omitted())
}

// TestFit_HandChecked verifies coefficients against the closed-form normal
// equations for a small noisy dataset.
//
// For x = {0,1,2,3}, y = {1,2,2,4}: slope = cov/var = 0.9, intercept = 0.9.
func TestFit_HandChecked(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		1, 0,
		1, 1,
		1, 2,
		1, 3,
	})
	y := []float64{1, 2, 2, 4}

	m, err := linmodel.Fit(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, m.Coefficients()[0], 1e-10)
	assert.InDelta(t, 0.9, m.Coefficients()[1], 1e-10)

	// Residuals must reproduce y.
	for i, f := range m.Fitted() {
		assert.InDelta(t, y[i], f+m.Residuals()[i], 1e-12)
	}
}

// TestFit_SingularDesign verifies that a rank-deficient design fails
// ErrEstimationFailure.
func TestFit_SingularDesign(t *testing.T) {
	// Second column is twice the first.
	x := mat.NewDense(4, 2, []float64{
		1, 2,
		2, 4,
		3, 6,
		4, 8,
	})
	_, err := linmodel.Fit(x, []float64{1, 2, 3, 4})
	assert.ErrorIs(t, err, cgm.ErrEstimationFailure, "collinear design must error")
}

// TestFitNA_OmitsRows verifies NaN rows are dropped and reported in
// ascending original-row order.
func TestFitNA_OmitsRows(t *testing.T) {
	x := mat.NewDense(5, 2, []float64{
		1, 0,
		1, math.NaN(),
		1, 2,
		1, 3,
		1, 4,
	})
	y := []float64{1, 3, 5, math.NaN(), 9}

	m, err := linmodel.FitNA(x, y)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, m.Omitted())
	assert.Equal(t, 3, m.NumObs())
	// Remaining rows lie on y = 1 + 2x.
	assert.InDelta(t, 1.0, m.Coefficients()[0], 1e-10)
	assert.InDelta(t, 2.0, m.Coefficients()[1], 1e-10)
}

// TestRefit_IsIndependent verifies Refit returns a new model and leaves the
// receiver untouched.
func TestRefit_IsIndependent(t *testing.T) {
	x := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	m, err := linmodel.Fit(x, []float64{2, 4, 6, 8})
	require.NoError(t, err)
	orig := m.Coefficients()[0]

	m2, err := m.Refit(x, []float64{3, 6, 9, 12})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, m2.Coefficients()[0], 1e-10, "refit coefficients from new data")
	assert.InDelta(t, orig, m.Coefficients()[0], 1e-15, "receiver unchanged")
}
