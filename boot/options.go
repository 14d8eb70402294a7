package boot

import "github.com/statkit/cgm"

// Type selects the resampling scheme.
type Type int

const (
	// Pairs refits on the observations of the drawn clusters, with
	// repetition: a cluster drawn twice contributes all its rows twice.
	Pairs Type = iota

	// Residual holds the regressors fixed and rebuilds the response as
	// fitted values plus cluster-resampled residuals. Donor residual
	// blocks are matched to the original clusters in order and recycled or
	// truncated to the recipient's size, so the scheme is exact only for
	// balanced clusters.
	Residual

	// Wild holds the full dataset fixed and draws one multiplier per
	// cluster, rebuilding the response as fitted + multiplier·residual.
	Wild
)

// WildDist selects the wild-bootstrap multiplier distribution.
type WildDist int

const (
	// Rademacher draws −1 or +1 with probability ½ each.
	Rademacher WildDist = iota

	// Mammen draws the two-point distribution −(√5−1)/2 with probability
	// (√5+1)/(2√5) and (√5+1)/2 otherwise; it matches the first three
	// moments of the residual distribution.
	Mammen

	// Normal draws from the standard Gaussian.
	Normal

	// Custom uses Options.Sampler.
	Custom
)

// Options configures ClusterBoot. The zero value is NOT usable: R must be
// set; use DefaultOptions() as a base.
type Options struct {
	// Type selects pairs, residual or wild resampling.
	Type Type

	// Wild selects the multiplier distribution when Type == Wild.
	Wild WildDist

	// Sampler supplies multipliers when Wild == Custom: any zero-argument
	// function returning one real value. Setting Sampler with a built-in
	// Wild distribution is rejected as ambiguous.
	Sampler func() float64

	// R is the number of bootstrap replicates per subset. Must be at least
	// 2 (an empirical covariance needs that many points); DefaultOptions
	// uses 1000.
	R int

	// Seed initializes the PCG streams. Two calls with equal Seed and
	// equal inputs return identical matrices.
	Seed uint64

	// White controls substitution of the top interaction term. See
	// cgm.WhiteMode.
	White cgm.WhiteMode

	// ForcePSD clips negative eigenvalues of the finished matrix.
	ForcePSD bool

	// Parallel bounds the number of concurrently processed subsets; values
	// below 2 mean serial. Output is independent of this setting.
	Parallel int

	// OnWarning, when set, receives a NumericalWarning if the finished
	// matrix has a negative eigenvalue and ForcePSD is false.
	OnWarning func(cgm.NumericalWarning)
}

// DefaultOptions returns wild/Rademacher resampling with R=1000, automatic
// White resolution, serial execution.
func DefaultOptions() Options {
	return Options{
		Type:  Wild,
		Wild:  Rademacher,
		R:     1000,
		White: cgm.WhiteAuto,
	}
}
