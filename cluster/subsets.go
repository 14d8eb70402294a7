// SPDX-License-Identifier: MIT

package cluster

import (
	"strings"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/statkit/cgm"
)

// keySep separates constituent labels inside an interaction key. A bare
// concatenation would let ("a","bc") collide with ("ab","c"); the unit
// separator keeps key equality equivalent to tuple equality. Keys are
// opaque to callers.
const keySep = "\x1f"

// Subset identifies one non-empty subset of clustering dimensions together
// with everything the estimators need from it: the inclusion-exclusion sign,
// the derived interaction-key column, and the row groups it induces.
type Subset struct {
	// Dims lists the original dimension indices composing the subset, in
	// ascending order.
	Dims []int

	// Sign is +1 for odd-sized subsets and −1 for even-sized ones.
	Sign float64

	keys   []string
	groups [][]int
}

// Size returns the number of dimensions in the subset.
func (s *Subset) Size() int { return len(s.Dims) }

// Keys returns the derived interaction-key column (length N). For a
// singleton subset this groups identically to the original label column.
// The returned slice is shared; callers must not modify it.
func (s *Subset) Keys() []string { return s.keys }

// Groups returns the row indices of each distinct key, groups ordered by
// first appearance and rows ascending within a group. The returned slices
// are shared; callers must not modify them.
func (s *Subset) Groups() [][]int { return s.groups }

// NumGroups returns M, the number of distinct keys.
func (s *Subset) NumGroups() int { return len(s.groups) }

// Stats returns the subset's group statistics for a model of rank k.
func (s *Subset) Stats(k int) GroupStats {
	return GroupStats{M: len(s.groups), N: len(s.keys), K: k}
}

// Subsets enumerates all 2^D−1 non-empty dimension subsets.
//
// The order is a tested contract: subsets are grouped by increasing size
// (all singletons in column order, then all pairs, …) and lexicographic
// within a size, so the single size-D subset — the "top" interaction — is
// always last. Sign assignment and df-correction vectors index into this
// order.
func (s *Spec) Subsets() []*Subset {
	out := make([]*Subset, 0, 1<<s.d-1)
	for size := 1; size <= s.d; size++ {
		for _, dims := range combin.Combinations(s.d, size) {
			sub := &Subset{Dims: dims, Sign: sign(size)}
			sub.keys = s.interactionKeys(dims)
			sub.groups = groupRows(sub.keys)
			out = append(out, sub)
		}
	}
	return out
}

// Top returns the full-interaction subset, the last one in enumeration
// order.
func Top(subsets []*Subset) *Subset { return subsets[len(subsets)-1] }

// sign implements (−1)^(size+1).
func sign(size int) float64 {
	if size%2 == 1 {
		return 1
	}
	return -1
}

// interactionKeys derives the subset's key column. Singletons reuse the
// original column; larger subsets join the constituent labels row-wise.
func (s *Spec) interactionKeys(dims []int) []string {
	if len(dims) == 1 {
		return s.cols[dims[0]]
	}
	keys := make([]string, s.n)
	var b strings.Builder
	for r := 0; r < s.n; r++ {
		b.Reset()
		for j, d := range dims {
			if j > 0 {
				b.WriteString(keySep)
			}
			b.WriteString(s.cols[d][r])
		}
		keys[r] = b.String()
	}
	return keys
}

// groupRows collects row indices per distinct key in first-appearance order.
func groupRows(keys []string) [][]int {
	idx := make(map[string]int, len(keys))
	var groups [][]int
	for r, k := range keys {
		g, ok := idx[k]
		if !ok {
			g = len(groups)
			idx[k] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], r)
	}
	return groups
}

// GroupStats carries the per-subset counts the estimators derive scaling
// factors from: M distinct groups, N observations, model rank K.
type GroupStats struct {
	M, N, K int
}

// DFC returns the finite-sample degrees-of-freedom correction
// (M/(M−1))·((N−1)/(N−K)). Callers must ensure M > 1 and N > K; with a
// single group or a saturated model the correction is undefined.
func (g GroupStats) DFC() float64 {
	return (float64(g.M) / float64(g.M-1)) * (float64(g.N-1) / float64(g.N-g.K))
}

// ResolveWhite applies the White-substitution rule to an enumerated subset
// list: under cgm.WhiteAuto the top term is substituted iff D > 1 and the
// top subset's group count equals the product of the group counts of all
// other subsets — exactly one observation per top-level interaction cell.
func ResolveWhite(mode cgm.WhiteMode, subsets []*Subset, dims int) bool {
	switch mode {
	case cgm.WhiteOn:
		return true
	case cgm.WhiteOff:
		return false
	}
	if dims <= 1 {
		return false
	}
	prod := 1
	for _, sub := range subsets[:len(subsets)-1] {
		prod *= sub.NumGroups()
	}
	return Top(subsets).NumGroups() == prod
}
