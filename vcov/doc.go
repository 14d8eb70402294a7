// Package vcov computes multi-way cluster-robust variance-covariance
// matrices for fitted linear models (Cameron-Gelbach-Miller).
//
// 🚀 How it works:
//
//	For D clustering dimensions, every non-empty subset of dimensions
//	contributes one clustered "meat" term. Scores are summed within each
//	cluster of the subset, the cluster sums are crossed into a K×K
//	matrix, and the terms are combined with inclusion-exclusion signs
//	before the usual sandwich wrap:
//
//	    meat = Σ_S sign(S) · dfc(S) · G(S)ᵀG(S) / N
//	    VCOV = bread · meat · bread / N
//
// ✨ Features:
//   - Degrees-of-freedom corrections per subset: automatic
//     (M/(M−1))·((N−1)/(N−K)), disabled, or an explicit vector
//   - HC2/HC3 leverage adjustment of the score matrix
//   - Automatic White substitution for the degenerate top interaction
//     (one observation per cell), per CGM (2011) and Ma (2014)
//   - Optional bounded parallelism across subsets; results are identical
//     to the serial run
//   - Optional positive-semidefinite repair, or a NumericalWarning
//     callback when the uncorrected estimate is indefinite
//
// ⚙️ Usage:
//
//	m, _ := linmodel.Fit(x, y)
//	spec, _ := cluster.NewSpec(firmIDs, yearIDs)
//	opts := vcov.DefaultOptions()
//	V, err := vcov.ClusterVCOV(m, spec, &opts)
//
// The returned matrix is K×K with row/column order matching the model's
// coefficient order.
package vcov
