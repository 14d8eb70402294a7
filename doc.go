// Package cgm estimates cluster-robust and bootstrapped variance-covariance
// matrices for linear models, implementing the multi-way clustering method
// of Cameron, Gelbach & Miller.
//
// 🚀 What is cgm?
//
//	A pure-Go statistics library that brings together:
//		• Multi-way clustering: all 2^D−1 cluster interactions with
//		  inclusion-exclusion signs (cluster/)
//		• Analytic sandwich estimation: per-cluster score aggregation,
//		  degrees-of-freedom corrections, White substitution (vcov/)
//		• Cluster bootstrap: pairs, residual and wild resampling with
//		  Rademacher / Mammen / normal / custom weights (boot/)
//		• Sandwich primitives: scores, bread, HC0 meat, HC2/HC3 leverage
//		  adjustment (sandwich/)
//		• OLS reference model: QR-based fit with NA-row bookkeeping
//		  (linmodel/)
//		• PSD repair: eigenvalue clipping for numerically indefinite
//		  covariance matrices (psd/)
//
// ✨ Why choose cgm?
//
//   - Deterministic – seeded PCG streams per subset; parallel runs
//     reproduce serial results bit-for-bit
//   - Rock-solid guarantees – eager validation, sentinel errors, no panics
//     on user input
//   - Concurrent where it pays – per-subset aggregation and resampling fan
//     out over a bounded errgroup with no shared mutable state
//
// Under the hood, everything is organized under six subpackages:
//
//	cluster/  — cluster tables, subset enumeration, interaction keys
//	vcov/     — analytic cluster-robust VCOV (the CGM sandwich)
//	boot/     — cluster bootstrap VCOV (pairs / residual / wild)
//	sandwich/ — score, bread and meat primitives
//	linmodel/ — fitted-model contract + OLS reference implementation
//	psd/      — positive-semidefinite correction and symmetry utilities
//
// Quick sketch for D=2 (firm × year):
//
//	V = V(firm) + V(year) − V(firm×year)
//
// where each term is a one-way cluster-robust VCOV and the last term may be
// replaced by the White HC0 estimator when every firm×year cell is a
// singleton.
//
// This package itself only carries the error kinds shared by all
// subpackages; start with vcov.ClusterVCOV or boot.ClusterBoot.
//
//	go get github.com/statkit/cgm
package cgm
