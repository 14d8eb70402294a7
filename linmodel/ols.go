package linmodel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/statkit/cgm"
)

// OLS is a fitted ordinary-least-squares model. It implements Model.
type OLS struct {
	x       *mat.Dense
	y       []float64
	coef    []float64
	fitted  []float64
	resid   []float64
	omitted []int
}

// Fit estimates y = X·β + ε by QR decomposition and returns the fitted
// model. X must have more rows than columns and full column rank.
//
// Errors:
//   - cgm.ErrInvalidInput      — nil/empty X, len(y) ≠ rows(X), or rows ≤ cols.
//   - cgm.ErrEstimationFailure — X is singular or near-singular.
func Fit(x *mat.Dense, y []float64) (*OLS, error) {
	if x == nil {
		return nil, fmt.Errorf("linmodel: nil design matrix: %w", cgm.ErrInvalidInput)
	}
	n, k := x.Dims()
	if k < 1 {
		return nil, fmt.Errorf("linmodel: design matrix has no columns: %w", cgm.ErrInvalidInput)
	}
	if len(y) != n {
		return nil, fmt.Errorf("linmodel: response has %d rows, design has %d: %w", len(y), n, cgm.ErrInvalidInput)
	}
	if n <= k {
		return nil, fmt.Errorf("linmodel: need more observations (%d) than coefficients (%d): %w", n, k, cgm.ErrInvalidInput)
	}

	var qr mat.QR
	qr.Factorize(x)

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, mat.NewVecDense(n, y)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, fmt.Errorf("linmodel: design matrix is singular: %w", cgm.ErrEstimationFailure)
		}
		// Near-singular: gonum still produced a usable solution; keep it.
	}

	coef := make([]float64, k)
	for j := 0; j < k; j++ {
		coef[j] = beta.AtVec(j)
	}

	var fv mat.VecDense
	fv.MulVec(x, &beta)
	fitted := make([]float64, n)
	resid := make([]float64, n)
	yc := make([]float64, n)
	for i := 0; i < n; i++ {
		fitted[i] = fv.AtVec(i)
		resid[i] = y[i] - fitted[i]
		yc[i] = y[i]
	}

	return &OLS{x: x, y: yc, coef: coef, fitted: fitted, resid: resid}, nil
}

// FitNA fits after dropping every row whose design entries or response
// contain NaN, recording the dropped original-row indices. This is the
// normalized entry point for data with missing values.
func FitNA(x *mat.Dense, y []float64) (*OLS, error) {
	if x == nil {
		return nil, fmt.Errorf("linmodel: nil design matrix: %w", cgm.ErrInvalidInput)
	}
	n, k := x.Dims()
	if len(y) != n {
		return nil, fmt.Errorf("linmodel: response has %d rows, design has %d: %w", len(y), n, cgm.ErrInvalidInput)
	}

	var keep, omit []int
	for i := 0; i < n; i++ {
		if rowHasNaN(x, i, k) || math.IsNaN(y[i]) {
			omit = append(omit, i)
			continue
		}
		keep = append(keep, i)
	}
	if len(omit) == 0 {
		return Fit(x, y)
	}

	xr := mat.NewDense(len(keep), k, nil)
	yr := make([]float64, len(keep))
	for t, r := range keep {
		xr.SetRow(t, x.RawRowView(r))
		yr[t] = y[r]
	}

	m, err := Fit(xr, yr)
	if err != nil {
		return nil, err
	}
	m.omitted = omit
	return m, nil
}

func rowHasNaN(x *mat.Dense, i, k int) bool {
	for j := 0; j < k; j++ {
		if math.IsNaN(x.At(i, j)) {
			return true
		}
	}
	return false
}

// Coefficients returns the fitted coefficient vector.
func (m *OLS) Coefficients() []float64 { return m.coef }

// Rank returns the number of estimated coefficients.
func (m *OLS) Rank() int { return len(m.coef) }

// NumObs returns the number of retained observations.
func (m *OLS) NumObs() int { return len(m.resid) }

// Design returns the retained-row model matrix.
func (m *OLS) Design() *mat.Dense { return m.x }

// Response returns the retained-row response vector.
func (m *OLS) Response() []float64 { return m.y }

// Fitted returns the fitted values.
func (m *OLS) Fitted() []float64 { return m.fitted }

// Residuals returns response − fitted.
func (m *OLS) Residuals() []float64 { return m.resid }

// Omitted returns the original-row indices dropped by FitNA.
func (m *OLS) Omitted() []int { return m.omitted }

// Refit fits the same least-squares specification on new data.
func (m *OLS) Refit(x *mat.Dense, y []float64) (Model, error) {
	return Fit(x, y)
}
