package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statkit/cgm"
	"github.com/statkit/cgm/cluster"
)

// TestNewSpec_Validation covers the eager input checks: no columns, empty
// columns, ragged columns.
func TestNewSpec_Validation(t *testing.T) {
	_, err := cluster.NewSpec()
	assert.ErrorIs(t, err, cgm.ErrInvalidInput, "D < 1 must error")

	_, err = cluster.NewSpec([]string{})
	assert.ErrorIs(t, err, cgm.ErrInvalidInput, "empty column must error")

	_, err = cluster.NewSpec([]string{"a", "b"}, []string{"x"})
	assert.ErrorIs(t, err, cgm.ErrInvalidInput, "ragged columns must error")
}

// TestNewSpec_CopiesColumns verifies the caller cannot mutate a Spec through
// the slices it passed in.
func TestNewSpec_CopiesColumns(t *testing.T) {
	col := []string{"a", "b"}
	s, err := cluster.NewSpec(col)
	require.NoError(t, err)

	col[0] = "mutated"
	assert.Equal(t, "a", s.Column(0)[0], "Spec must deep-copy input columns")
}

// TestSubsets_D3Contract pins the enumeration contract for D=3: exactly 7
// subsets with sizes {1,1,1,2,2,2,3} and signs {+,+,+,−,−,−,+}, singletons
// in column order and pairs lexicographic.
func TestSubsets_D3Contract(t *testing.T) {
	a := []string{"a1", "a2"}
	b := []string{"b1", "b2"}
	c := []string{"c1", "c2"}
	s, err := cluster.NewSpec(a, b, c)
	require.NoError(t, err)

	subsets := s.Subsets()
	require.Len(t, subsets, 7, "2^3-1 subsets expected")

	wantSizes := []int{1, 1, 1, 2, 2, 2, 3}
	wantSigns := []float64{1, 1, 1, -1, -1, -1, 1}
	wantDims := [][]int{{0}, {1}, {2}, {0, 1}, {0, 2}, {1, 2}, {0, 1, 2}}
	for i, sub := range subsets {
		assert.Equal(t, wantSizes[i], sub.Size(), "size at position %d", i)
		assert.Equal(t, wantSigns[i], sub.Sign, "sign at position %d", i)
		assert.Equal(t, wantDims[i], sub.Dims, "dims at position %d", i)
	}
	assert.Equal(t, 3, cluster.Top(subsets).Size(), "top subset is the full interaction")
}

// TestSubsets_KeyCollision is a regression for the classic concatenation
// ambiguity: labels ("a","bc") and ("ab","c") must land in different groups.
func TestSubsets_KeyCollision(t *testing.T) {
	s, err := cluster.NewSpec(
		[]string{"a", "ab"},
		[]string{"bc", "c"},
	)
	require.NoError(t, err)

	pair := cluster.Top(s.Subsets())
	assert.Equal(t, 2, pair.NumGroups(), "distinct tuples must not share an interaction key")
}

// TestSubsets_GroupOrder verifies first-appearance group ordering with
// ascending rows inside each group.
func TestSubsets_GroupOrder(t *testing.T) {
	s, err := cluster.NewSpec([]string{"x", "y", "x", "z", "y"})
	require.NoError(t, err)

	sub := s.Subsets()[0]
	require.Equal(t, 3, sub.NumGroups())
	assert.Equal(t, [][]int{{0, 2}, {1, 4}, {3}}, sub.Groups())
}

// TestGroupStats_DFC checks the (M/(M−1))·((N−1)/(N−K)) factor against a
// hand computation.
func TestGroupStats_DFC(t *testing.T) {
	g := cluster.GroupStats{M: 10, N: 100, K: 2}
	// (10/9)*(99/98)
	assert.InDelta(t, (10.0/9.0)*(99.0/98.0), g.DFC(), 1e-15)
}

// TestDrop_FiltersRows verifies omitted-row filtering keeps order and
// labels.
func TestDrop_FiltersRows(t *testing.T) {
	s, err := cluster.NewSpec([]string{"r0", "r1", "r2", "r3"})
	require.NoError(t, err)

	got, err := s.Drop([]int{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, []string{"r0", "r2"}, got.Column(0))

	_, err = s.Drop([]int{7})
	assert.ErrorIs(t, err, cgm.ErrInvalidInput, "out-of-range omit index must error")
}

// TestAlign_RowCountContract covers the three Align outcomes: already
// filtered, original rows needing a Drop, and an irreconcilable mismatch.
func TestAlign_RowCountContract(t *testing.T) {
	s, err := cluster.NewSpec([]string{"r0", "r1", "r2", "r3"})
	require.NoError(t, err)

	got, err := s.Align(4, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Len(), "matching row count passes through")

	got, err = s.Align(3, []int{2})
	require.NoError(t, err)
	assert.Equal(t, []string{"r0", "r1", "r3"}, got.Column(0), "original-row table is filtered")

	_, err = s.Align(2, nil)
	assert.ErrorIs(t, err, cgm.ErrInvalidInput, "irreconcilable row count must error")
}

// TestResolveWhite_AutoRule exercises the degenerate-interaction detection:
// with every (a,b) cell a singleton, M_top = M_a·M_b and auto resolves true;
// a repeated cell breaks the equality.
func TestResolveWhite_AutoRule(t *testing.T) {
	// 2 a-groups × 2 b-groups, all 4 cells distinct.
	s, err := cluster.NewSpec(
		[]string{"a1", "a1", "a2", "a2"},
		[]string{"b1", "b2", "b1", "b2"},
	)
	require.NoError(t, err)
	subsets := s.Subsets()

	assert.True(t, cluster.ResolveWhite(cgm.WhiteAuto, subsets, s.Dims()), "singleton cells resolve true")
	assert.False(t, cluster.ResolveWhite(cgm.WhiteOff, subsets, s.Dims()), "WhiteOff wins over structure")
	assert.True(t, cluster.ResolveWhite(cgm.WhiteOn, subsets, s.Dims()), "WhiteOn wins over structure")

	// Repeat a cell: 3 distinct cells < 2·2.
	s2, err := cluster.NewSpec(
		[]string{"a1", "a1", "a2", "a2"},
		[]string{"b1", "b1", "b1", "b2"},
	)
	require.NoError(t, err)
	assert.False(t, cluster.ResolveWhite(cgm.WhiteAuto, s2.Subsets(), s2.Dims()), "non-singleton cells resolve false")

	// D=1 never substitutes under auto.
	s3, err := cluster.NewSpec([]string{"a", "b"})
	require.NoError(t, err)
	assert.False(t, cluster.ResolveWhite(cgm.WhiteAuto, s3.Subsets(), s3.Dims()), "D=1 resolves false")
}
