// Package sandwich provides the building blocks of sandwich variance
// estimators for least-squares models: per-observation scores, the bread
// (scaled inverse information), the White HC0 meat, their combination
// bread·meat·bread/n, and HC2/HC3 leverage adjustment of the score matrix.
//
// Conventions follow the standard sandwich formulation: with score matrix S
// (rows s_i = x_i·e_i),
//
//	bread = n·(XᵀX)⁻¹
//	meat  = SᵀS / n
//	VCOV  = bread·meat·bread / n = (XᵀX)⁻¹ Xᵀdiag(e²)X (XᵀX)⁻¹
//
// so the clustered estimators in vcov/ only have to swap in their own meat.
package sandwich

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/statkit/cgm"
	"github.com/statkit/cgm/linmodel"
	"github.com/statkit/cgm/psd"
)

// Leverage selects the hat-diagonal reweighting applied to the score matrix
// before aggregation.
//
//   - LeverageOff — scores used as-is (HC0 flavor).
//   - HC2 — score row i divided by √(1−h_i).
//   - HC3 — score row i divided by (1−h_i).
//
// h_i = x_iᵀ(XᵀX)⁻¹x_i is the hat-matrix diagonal. With per-row singleton
// clusters and no df correction these reproduce the classic HC2/HC3
// estimators; for deeper clustering the same per-observation adjustment is
// applied as specified by the source method, a composition validated only
// for the one-way case.
type Leverage int

// leverageTol guards the 1−h denominator: an observation whose leverage is
// within this tolerance of 1 fully determines its own fit and the
// adjustment would blow up.
const leverageTol = 1e-8

const (
	// LeverageOff applies no hat-diagonal reweighting.
	LeverageOff Leverage = iota

	// HC2 divides each score row by sqrt(1 − h_i).
	HC2

	// HC3 divides each score row by (1 − h_i).
	HC3
)

// Scores returns the N×K matrix of estimating-function contributions,
// row i = x_i · e_i.
func Scores(m linmodel.Model) *mat.Dense {
	x := m.Design()
	resid := m.Residuals()
	n, k := x.Dims()

	s := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		e := resid[i]
		for j := 0; j < k; j++ {
			s.Set(i, j, x.At(i, j)*e)
		}
	}
	return s
}

// MeatHC0 returns the White heteroskedasticity-consistent meat SᵀS/n over
// the full, unclustered sample.
func MeatHC0(m linmodel.Model) *mat.SymDense {
	s := Scores(m)
	n, _ := s.Dims()

	var ss mat.Dense
	ss.Mul(s.T(), s)
	ss.Scale(1/float64(n), &ss)
	return psd.Symmetrize(&ss)
}

// Bread returns n·(XᵀX)⁻¹ for the model's design matrix.
//
// Errors: cgm.ErrEstimationFailure when XᵀX is singular.
func Bread(m linmodel.Model) (*mat.SymDense, error) {
	inv, err := xtxInverse(m.Design())
	if err != nil {
		return nil, err
	}
	n, _ := m.Design().Dims()
	inv.Scale(float64(n), inv)
	return psd.Symmetrize(inv), nil
}

// Combine wraps a meat matrix into a covariance estimate:
// bread·meat·bread / n. The result is symmetrized against floating-point
// drift from the two multiplications.
func Combine(bread *mat.SymDense, meat mat.Matrix, n int) *mat.SymDense {
	var bm mat.Dense
	bm.Mul(bread, meat)
	var bmb mat.Dense
	bmb.Mul(&bm, bread)
	bmb.Scale(1/float64(n), &bmb)
	return psd.Symmetrize(&bmb)
}

// VCOVHC0 is the convenience composition Combine(Bread, MeatHC0, n): the
// plain White HC0 coefficient covariance.
func VCOVHC0(m linmodel.Model) (*mat.SymDense, error) {
	bread, err := Bread(m)
	if err != nil {
		return nil, err
	}
	return Combine(bread, MeatHC0(m), m.NumObs()), nil
}

// AdjustLeverage returns a copy of scores with each row reweighted by the
// requested hat-diagonal adjustment. x must be the design matrix the scores
// came from.
//
// Errors:
//   - cgm.ErrEstimationFailure — XᵀX singular, or an observation whose
//     leverage h_i is numerically 1 (the adjustment would divide by zero).
func AdjustLeverage(scores *mat.Dense, x *mat.Dense, kind Leverage) (*mat.Dense, error) {
	if kind == LeverageOff {
		return scores, nil
	}

	inv, err := xtxInverse(x)
	if err != nil {
		return nil, err
	}

	n, k := scores.Dims()
	out := mat.NewDense(n, k, nil)
	row := mat.NewVecDense(k, nil)
	var tmp mat.VecDense
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			row.SetVec(j, x.At(i, j))
		}
		tmp.MulVec(inv, row)
		h := mat.Dot(row, &tmp)

		denom := 1 - h
		if denom <= leverageTol {
			return nil, fmt.Errorf("sandwich: observation %d has leverage %g >= 1: %w", i, h, cgm.ErrEstimationFailure)
		}
		if kind == HC2 {
			denom = math.Sqrt(denom)
		}
		for j := 0; j < k; j++ {
			out.Set(i, j, scores.At(i, j)/denom)
		}
	}
	return out, nil
}

// xtxInverse computes (XᵀX)⁻¹, mapping singularity to ErrEstimationFailure.
func xtxInverse(x *mat.Dense) (*mat.Dense, error) {
	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, fmt.Errorf("sandwich: X'X is singular: %w", cgm.ErrEstimationFailure)
		}
	}
	return &inv, nil
}
