// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"

	"github.com/statkit/cgm"
)

// Spec is an immutable N×D table of cluster labels: one column per
// clustering dimension, one row per observation. Labels are free-form
// strings; only equality within a column matters.
type Spec struct {
	cols [][]string
	n, d int
}

// NewSpec builds a Spec from D label columns of equal length.
//
// Errors (all cgm.ErrInvalidInput):
//   - no columns (D < 1);
//   - an empty column (N < 1);
//   - ragged columns of different lengths.
func NewSpec(cols ...[]string) (*Spec, error) {
	if len(cols) < 1 {
		return nil, fmt.Errorf("cluster: need at least one cluster dimension: %w", cgm.ErrInvalidInput)
	}
	n := len(cols[0])
	if n < 1 {
		return nil, fmt.Errorf("cluster: cluster columns must be non-empty: %w", cgm.ErrInvalidInput)
	}
	for i, c := range cols {
		if len(c) != n {
			return nil, fmt.Errorf("cluster: column %d has %d rows, want %d: %w", i, len(c), n, cgm.ErrInvalidInput)
		}
	}

	// Deep-copy so later mutation of the caller's slices cannot leak in.
	cp := make([][]string, len(cols))
	for i, c := range cols {
		cp[i] = append([]string(nil), c...)
	}
	return &Spec{cols: cp, n: n, d: len(cols)}, nil
}

// Len returns the number of observations N.
func (s *Spec) Len() int { return s.n }

// Dims returns the number of clustering dimensions D.
func (s *Spec) Dims() int { return s.d }

// Column returns dimension i's label column. The returned slice is shared;
// callers must not modify it.
func (s *Spec) Column(i int) []string { return s.cols[i] }

// Retain returns a new Spec holding only the rows whose indices appear in
// keep, in the given order. Out-of-range indices fail cgm.ErrInvalidInput.
func (s *Spec) Retain(keep []int) (*Spec, error) {
	if len(keep) < 1 {
		return nil, fmt.Errorf("cluster: Retain needs at least one row: %w", cgm.ErrInvalidInput)
	}
	cols := make([][]string, s.d)
	for j := range cols {
		cols[j] = make([]string, 0, len(keep))
	}
	for _, r := range keep {
		if r < 0 || r >= s.n {
			return nil, fmt.Errorf("cluster: row index %d out of range [0,%d): %w", r, s.n, cgm.ErrInvalidInput)
		}
		for j := 0; j < s.d; j++ {
			cols[j] = append(cols[j], s.cols[j][r])
		}
	}
	return &Spec{cols: cols, n: len(keep), d: s.d}, nil
}

// Drop returns a new Spec with the given row indices removed. It is the
// filtering step applied when the fitted model reports omitted rows.
func (s *Spec) Drop(omit []int) (*Spec, error) {
	if len(omit) == 0 {
		return s, nil
	}
	drop := make(map[int]bool, len(omit))
	for _, r := range omit {
		if r < 0 || r >= s.n {
			return nil, fmt.Errorf("cluster: omitted row index %d out of range [0,%d): %w", r, s.n, cgm.ErrInvalidInput)
		}
		drop[r] = true
	}
	keep := make([]int, 0, s.n-len(drop))
	for r := 0; r < s.n; r++ {
		if !drop[r] {
			keep = append(keep, r)
		}
	}
	return s.Retain(keep)
}

// Align reconciles the cluster table with a fitted model's observation
// bookkeeping: numObs is the row count actually used in estimation and
// omitted lists the original-row indices the model dropped. A table given in
// original-row terms is filtered by omitted; a table already filtered passes
// through. Anything else is a dimension mismatch.
//
// Errors: cgm.ErrInvalidInput when the row count matches neither the
// retained nor the original observation count.
func (s *Spec) Align(numObs int, omitted []int) (*Spec, error) {
	switch s.n {
	case numObs:
		return s, nil
	case numObs + len(omitted):
		if len(omitted) > 0 {
			return s.Drop(omitted)
		}
	}
	return nil, fmt.Errorf("cluster: table has %d rows, model used %d (with %d omitted): %w",
		s.n, numObs, len(omitted), cgm.ErrInvalidInput)
}
