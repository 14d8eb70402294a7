// Package cgm: canonical error kinds shared by every subpackage.
// Subpackages wrap these sentinels with fmt.Errorf("pkg: context: %w", ...)
// so callers can match across the whole module with errors.Is while still
// seeing which argument or step failed.

package cgm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a required argument is missing, a
	// dimension does not match, a df-correction vector has the wrong length,
	// or a cluster table's row count disagrees with the model's observations.
	// It is detected eagerly, before any aggregation work begins.
	ErrInvalidInput = errors.New("cgm: invalid input")

	// ErrEstimationFailure is returned when a numerical step fails: a
	// bootstrap refit does not converge, or a design matrix is singular
	// during leverage or bread computation. An estimate call never returns a
	// partial matrix alongside this error.
	ErrEstimationFailure = errors.New("cgm: estimation failure")
)

// NumericalWarning reports a non-fatal numerical finding: the finished VCOV
// has at least one negative eigenvalue and positive-semidefinite correction
// was not requested. The uncorrected matrix is still returned; the warning is
// delivered through the estimator's OnWarning callback, never as an error.
type NumericalWarning struct {
	// Op names the operation that produced the matrix, e.g. "vcov.ClusterVCOV".
	Op string

	// MinEigen is the most negative eigenvalue observed.
	MinEigen float64
}

// Error implements the error interface so warnings can be logged or wrapped
// by callers that treat them as failures.
func (w NumericalWarning) Error() string {
	return fmt.Sprintf("cgm: %s produced a non-positive-semidefinite matrix (min eigenvalue %g)", w.Op, w.MinEigen)
}

// WhiteMode controls whether the top-order interaction term is replaced by
// the White HC0 estimator, the degenerate case of CGM (2011) / Ma (2014)
// where every top-level interaction cell holds a single observation.
//
//   - WhiteAuto — substitute iff D > 1 and the top subset has exactly one
//     observation per group (its group count equals the product of the group
//     counts of all other subsets).
//   - WhiteOn   — always substitute.
//   - WhiteOff  — never substitute.
type WhiteMode int

const (
	// WhiteAuto resolves the substitution from the cluster structure.
	WhiteAuto WhiteMode = iota

	// WhiteOn forces the substitution regardless of structure.
	WhiteOn

	// WhiteOff disables the substitution regardless of structure.
	WhiteOff
)
