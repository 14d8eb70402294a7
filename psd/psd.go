// SPDX-License-Identifier: MIT

// Package psd repairs symmetric matrices that are numerically indefinite.
//
// A covariance matrix assembled from signed inclusion-exclusion terms can
// pick up small negative eigenvalues even though each individual term is
// positive semidefinite. Correct clips those eigenvalues to zero and
// reconstructs the matrix, which is the standard eigenvalue-truncation
// repair for cluster-robust VCOV estimates.
package psd

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/statkit/cgm"
)

// DefaultEpsilon is the tolerance used when deciding whether an eigenvalue
// or an asymmetry is meaningfully different from zero.
const DefaultEpsilon = 1e-10

// Correct returns the nearest positive-semidefinite matrix obtained by
// clipping negative eigenvalues of a to zero: V·diag(max(λ,0))·Vᵀ.
//
// The decomposition runs unconditionally, even when a is already PSD, so the
// result may differ from a by floating-point perturbation; callers should
// invoke Correct only when the correction was explicitly requested.
//
// Errors:
//   - cgm.ErrInvalidInput      — a is nil or empty.
//   - cgm.ErrEstimationFailure — the eigendecomposition did not converge.
func Correct(a *mat.SymDense) (*mat.SymDense, error) {
	if a == nil || a.SymmetricDim() == 0 {
		return nil, fmt.Errorf("psd: nil or empty matrix: %w", cgm.ErrInvalidInput)
	}

	var eig mat.EigenSym
	if !eig.Factorize(a, true) {
		return nil, fmt.Errorf("psd: eigendecomposition failed: %w", cgm.ErrEstimationFailure)
	}

	vals := eig.Values(nil)
	for i, v := range vals {
		if v < 0 {
			vals[i] = 0
		}
	}

	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Reconstruct V·diag(λ')·Vᵀ.
	k := len(vals)
	var scaled mat.Dense
	scaled.Mul(&vecs, mat.NewDiagDense(k, vals))
	var out mat.Dense
	out.Mul(&scaled, vecs.T())

	return Symmetrize(&out), nil
}

// MinEigenvalue returns the smallest eigenvalue of a. It is the probe used
// to decide whether a finished VCOV deserves a NumericalWarning.
//
// Errors:
//   - cgm.ErrInvalidInput      — a is nil or empty.
//   - cgm.ErrEstimationFailure — the eigendecomposition did not converge.
func MinEigenvalue(a *mat.SymDense) (float64, error) {
	if a == nil || a.SymmetricDim() == 0 {
		return 0, fmt.Errorf("psd: nil or empty matrix: %w", cgm.ErrInvalidInput)
	}

	var eig mat.EigenSym
	if !eig.Factorize(a, false) {
		return 0, fmt.Errorf("psd: eigendecomposition failed: %w", cgm.ErrEstimationFailure)
	}

	min := math.Inf(1)
	for _, v := range eig.Values(nil) {
		if v < min {
			min = v
		}
	}
	return min, nil
}

// Symmetrize folds a square matrix into a SymDense by averaging a[i,j] and
// a[j,i]. For matrices that are symmetric up to floating-point noise this is
// a cheap projection onto the symmetric cone; MaxAsymmetry quantifies how
// much folding changed.
//
// Panics if a is not square (programmer error, matching gonum conventions).
func Symmetrize(a mat.Matrix) *mat.SymDense {
	r, c := a.Dims()
	if r != c {
		panic("psd: Symmetrize requires a square matrix")
	}
	s := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			s.SetSym(i, j, (a.At(i, j)+a.At(j, i))/2)
		}
	}
	return s
}

// MaxAsymmetry returns max|a[i,j] − a[j,i]| over all pairs, the quantity the
// symmetry contract |V − Vᵀ| < ε is tested against.
func MaxAsymmetry(a mat.Matrix) float64 {
	r, c := a.Dims()
	if r != c {
		panic("psd: MaxAsymmetry requires a square matrix")
	}
	var max float64
	for i := 0; i < r; i++ {
		for j := i + 1; j < r; j++ {
			if d := math.Abs(a.At(i, j) - a.At(j, i)); d > max {
				max = d
			}
		}
	}
	return max
}
