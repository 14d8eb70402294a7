// Package boot estimates coefficient covariances by cluster bootstrap,
// combined across multiple clustering dimensions with the same
// inclusion-exclusion scheme as the analytic estimator in vcov/.
//
// 🚀 How it works:
//
//	For each of the 2^D−1 dimension subsets, clusters (not observations)
//	are resampled with replacement, the model is refitted R times, and
//	the empirical covariance of the R coefficient vectors becomes the
//	subset's term. Terms are summed with signs; no df correction and no
//	sandwich wrap, since each term already is a coefficient covariance:
//
//	    VCOV = Σ_S sign(S) · Cov(β*₁..β*_R | S)
//
// ✨ Resampling schemes:
//   - Pairs    — refit on the rows of the drawn clusters (duplicates kept)
//   - Residual — regressors fixed; drawn clusters donate residual blocks
//   - Wild     — one multiplier per cluster scales its residuals
//     (Rademacher, Mammen, standard normal, or a custom sampler)
//
// Guarantees:
//   - Deterministic given Options.Seed: every subset derives its own PCG
//     stream from the seed and subset ordinal, so the result is identical
//     whatever Parallel is set to.
//   - Fail-fast: any replicate refit failure aborts the whole call; a
//     partial signed sum is never returned.
//   - The degenerate top interaction resolves exactly as in vcov/:
//     when substituted, its resampling is skipped entirely and the White
//     HC0 coefficient covariance takes its place.
package boot
