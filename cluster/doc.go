// Package cluster builds the combinatorial scaffolding for multi-way
// cluster-robust variance estimation.
//
// 🚀 What does it do?
//
//	Given D cluster-label columns over N observations, it enumerates all
//	2^D−1 non-empty subsets of dimensions, derives one interaction key
//	column per subset, and assigns the inclusion-exclusion sign
//	(−1)^(s+1) for a subset of size s:
//
//	    V = Σ_{∅≠S⊆{1..D}} (−1)^(|S|+1) · V(S)
//
// ✨ Guarantees:
//   - Enumeration order is a contract: size-grouped (all singletons, then
//     all pairs, …, the full interaction last), lexicographic within a
//     size. Downstream sign and df-correction bookkeeping depends on it.
//   - Interaction keys preserve tuple equality exactly: two rows share a
//     key iff they share every constituent label. Keys are opaque — never
//     parse them.
//   - Groups within a subset are ordered by first appearance, so
//     resampling over groups is deterministic.
//
// Spec is immutable after construction; Drop and Retain return filtered
// copies, which is how omitted-observation bookkeeping from the fitted
// model is applied before any estimation.
package cluster
