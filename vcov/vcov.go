package vcov

import (
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/statkit/cgm"
	"github.com/statkit/cgm/cluster"
	"github.com/statkit/cgm/linmodel"
	"github.com/statkit/cgm/psd"
	"github.com/statkit/cgm/sandwich"
)

// ClusterVCOV estimates the multi-way cluster-robust coefficient covariance
// of a fitted model.
//
// Steps:
//  1. Filter the cluster table by the model's omitted rows (Spec.Align).
//  2. Enumerate all 2^D−1 dimension subsets with inclusion-exclusion signs.
//  3. Resolve df corrections and the White substitution.
//  4. Per subset, sum scores within clusters and cross the cluster sums
//     into a signed, df-corrected meat term (optionally in parallel).
//  5. Sum the terms, append the White HC0 meat if substituting, and wrap
//     with bread·meat·bread/N.
//
// Errors:
//   - cgm.ErrInvalidInput — nil model/spec, row-count mismatch, malformed
//     DFWeights, or DFExplicit combined with White substitution.
//   - cgm.ErrEstimationFailure — singular XᵀX during leverage or bread
//     computation.
//
// A nil opts uses DefaultOptions().
func ClusterVCOV(m linmodel.Model, spec *cluster.Spec, opts *Options) (*mat.SymDense, error) {
	if m == nil {
		return nil, fmt.Errorf("vcov: nil model: %w", cgm.ErrInvalidInput)
	}
	if spec == nil {
		return nil, fmt.Errorf("vcov: nil cluster spec: %w", cgm.ErrInvalidInput)
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}

	spec, err := spec.Align(m.NumObs(), m.Omitted())
	if err != nil {
		return nil, err
	}

	subsets := spec.Subsets()
	tcc := len(subsets)
	n := m.NumObs()
	k := m.Rank()

	useWhite := cluster.ResolveWhite(o.White, subsets, spec.Dims())

	dfc, err := resolveDFC(o, subsets, useWhite, k)
	if err != nil {
		return nil, err
	}

	scores := sandwich.Scores(m)
	if o.Leverage != sandwich.LeverageOff {
		scores, err = sandwich.AdjustLeverage(scores, m.Design(), o.Leverage)
		if err != nil {
			return nil, err
		}
	}

	retained := subsets
	if useWhite {
		retained = subsets[:tcc-1]
	}

	// Each subset owns its slot; the fan-in below is a deterministic
	// ordered sum, so completion order never shows in the output.
	terms := make([]*mat.Dense, len(retained))
	var g errgroup.Group
	if o.Parallel > 1 {
		g.SetLimit(o.Parallel)
	} else {
		g.SetLimit(1)
	}
	for i, sub := range retained {
		g.Go(func() error {
			terms[i] = meatTerm(scores, sub, dfc[i], n, k)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	meat := mat.NewDense(k, k, nil)
	for _, term := range terms {
		meat.Add(meat, term)
	}
	if useWhite {
		top := cluster.Top(subsets)
		var white mat.Dense
		white.Scale(top.Sign, sandwich.MeatHC0(m))
		meat.Add(meat, &white)
	}

	bread, err := sandwich.Bread(m)
	if err != nil {
		return nil, err
	}
	v := sandwich.Combine(bread, meat, n)

	return finalize(v, "vcov.ClusterVCOV", o.ForcePSD, o.OnWarning)
}

// resolveDFC builds the per-subset correction vector in enumeration order.
func resolveDFC(o Options, subsets []*cluster.Subset, useWhite bool, k int) ([]float64, error) {
	tcc := len(subsets)
	dfc := make([]float64, tcc)
	switch o.DFCorrection {
	case DFAuto:
		for i, sub := range subsets {
			st := sub.Stats(k)
			if st.M < 2 || st.N <= st.K {
				return nil, fmt.Errorf("vcov: subset %v has M=%d groups over N=%d rows (K=%d), df correction undefined: %w",
					sub.Dims, st.M, st.N, st.K, cgm.ErrInvalidInput)
			}
			dfc[i] = st.DFC()
		}
	case DFOff:
		for i := range dfc {
			dfc[i] = 1
		}
	case DFExplicit:
		if len(o.DFWeights) != tcc {
			return nil, fmt.Errorf("vcov: DFWeights has %d entries, want %d (one per subset): %w",
				len(o.DFWeights), tcc, cgm.ErrInvalidInput)
		}
		if useWhite {
			return nil, fmt.Errorf("vcov: explicit DFWeights cannot be combined with White substitution: %w",
				cgm.ErrInvalidInput)
		}
		copy(dfc, o.DFWeights)
	default:
		return nil, fmt.Errorf("vcov: unknown DFMode %d: %w", o.DFCorrection, cgm.ErrInvalidInput)
	}
	return dfc, nil
}

// meatTerm aggregates scores within the subset's clusters and crosses the
// cluster sums: sign · dfc · GᵀG / N.
func meatTerm(scores *mat.Dense, sub *cluster.Subset, dfc float64, n, k int) *mat.Dense {
	groups := sub.Groups()
	gm := mat.NewDense(len(groups), k, nil)
	for gi, rows := range groups {
		for _, r := range rows {
			for j := 0; j < k; j++ {
				gm.Set(gi, j, gm.At(gi, j)+scores.At(r, j))
			}
		}
	}

	var meat mat.Dense
	meat.Mul(gm.T(), gm)
	meat.Scale(sub.Sign*dfc/float64(n), &meat)
	return &meat
}

// finalize applies the PSD policy shared by both estimators: repair when
// forced, probe-and-warn when a callback is listening, pass through
// otherwise.
func finalize(v *mat.SymDense, op string, forcePSD bool, warn func(cgm.NumericalWarning)) (*mat.SymDense, error) {
	if forcePSD {
		return psd.Correct(v)
	}
	if warn != nil {
		if min, err := psd.MinEigenvalue(v); err == nil && min < -psd.DefaultEpsilon {
			warn(cgm.NumericalWarning{Op: op, MinEigen: min})
		}
	}
	return v, nil
}
