package linmodel

import "gonum.org/v1/gonum/mat"

// Model is the fitted-model surface the estimators consume. Implementations
// must be immutable after fitting: every accessor returns the same values
// for the life of the model, and Refit returns a new Model rather than
// mutating the receiver.
//
// Accessors returning slices or matrices share internal storage; callers
// must treat them as read-only.
type Model interface {
	// Coefficients returns the fitted coefficient vector, length Rank().
	Coefficients() []float64

	// Rank returns K, the number of estimated coefficients.
	Rank() int

	// NumObs returns N, the number of observations used in estimation,
	// after omitted rows were dropped.
	NumObs() int

	// Design returns the N×K model matrix over the retained rows.
	Design() *mat.Dense

	// Response returns the response vector over the retained rows.
	Response() []float64

	// Fitted returns the fitted values, length NumObs().
	Fitted() []float64

	// Residuals returns response − fitted, length NumObs().
	Residuals() []float64

	// Omitted returns the original-row indices dropped before fitting, in
	// ascending order; empty when every input row was used.
	Omitted() []int

	// Refit fits the same specification to new data and returns the new
	// model. Bootstrap resampling depends on this being side-effect free.
	Refit(x *mat.Dense, y []float64) (Model, error)
}
