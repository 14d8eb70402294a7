package vcov

import (
	"github.com/statkit/cgm"
	"github.com/statkit/cgm/sandwich"
)

// DFMode selects the degrees-of-freedom correction applied to each subset's
// meat term.
type DFMode int

const (
	// DFAuto applies (M/(M−1))·((N−1)/(N−K)) per subset.
	DFAuto DFMode = iota

	// DFOff applies no correction (factor 1 for every subset).
	DFOff

	// DFExplicit takes the per-subset factors from Options.DFWeights, which
	// must have exactly 2^D−1 entries in enumeration order.
	DFExplicit
)

// Options configures ClusterVCOV.
//
// The zero value is usable and equals DefaultOptions(): automatic df
// correction, no leverage adjustment, automatic White resolution, serial
// execution, no PSD correction.
type Options struct {
	// DFCorrection selects the per-subset finite-sample scaling.
	DFCorrection DFMode

	// DFWeights supplies the factors when DFCorrection == DFExplicit.
	// Length must equal the subset count 2^D−1; combining an explicit
	// vector with White substitution is rejected as invalid input (whether
	// the substitution would index the vector pre- or post-drop is
	// ambiguous, so it is refused rather than guessed).
	DFWeights []float64

	// Leverage applies HC2/HC3 hat-diagonal reweighting to the score
	// matrix before aggregation. The classic HC2/HC3 equivalence holds for
	// per-row singleton clusters with DFOff; for deeper clustering the
	// same per-observation adjustment is applied as the source method
	// specifies (validated only for the one-way case).
	Leverage sandwich.Leverage

	// White controls substitution of the top interaction term by the White
	// HC0 meat. See cgm.WhiteMode.
	White cgm.WhiteMode

	// ForcePSD clips negative eigenvalues of the finished matrix.
	ForcePSD bool

	// Parallel bounds the number of concurrent per-subset aggregations;
	// values below 2 mean serial execution. Output is independent of this
	// setting.
	Parallel int

	// OnWarning, when set, receives a NumericalWarning if the finished
	// matrix has a negative eigenvalue and ForcePSD is false. The
	// eigenvalue probe only runs when the callback is set.
	OnWarning func(cgm.NumericalWarning)
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		DFCorrection: DFAuto,
		Leverage:     sandwich.LeverageOff,
		White:        cgm.WhiteAuto,
	}
}
