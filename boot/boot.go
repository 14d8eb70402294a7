package boot

import (
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/statkit/cgm"
	"github.com/statkit/cgm/cluster"
	"github.com/statkit/cgm/linmodel"
	"github.com/statkit/cgm/psd"
	"github.com/statkit/cgm/sandwich"
)

// ClusterBoot estimates the multi-way clustered coefficient covariance by
// bootstrap: per dimension subset, clusters are drawn with replacement and
// the model refitted R times; the signed empirical covariances of the
// replicate coefficients are summed.
//
// Errors:
//   - cgm.ErrInvalidInput — nil model/spec, row-count mismatch, R < 2, or
//     an inconsistent Wild/Sampler combination.
//   - cgm.ErrEstimationFailure — any replicate refit fails; the whole call
//     aborts (no partial sum is ever returned).
//
// A nil opts uses DefaultOptions().
func ClusterBoot(m linmodel.Model, spec *cluster.Spec, opts *Options) (*mat.SymDense, error) {
	if m == nil {
		return nil, fmt.Errorf("boot: nil model: %w", cgm.ErrInvalidInput)
	}
	if spec == nil {
		return nil, fmt.Errorf("boot: nil cluster spec: %w", cgm.ErrInvalidInput)
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := validate(o); err != nil {
		return nil, err
	}

	spec, err := spec.Align(m.NumObs(), m.Omitted())
	if err != nil {
		return nil, err
	}

	subsets := spec.Subsets()
	tcc := len(subsets)
	k := m.Rank()
	useWhite := cluster.ResolveWhite(o.White, subsets, spec.Dims())

	retained := subsets
	if useWhite {
		// The substituted top term is never resampled.
		retained = subsets[:tcc-1]
	}

	terms := make([]*mat.SymDense, len(retained))
	var g errgroup.Group
	if o.Parallel > 1 {
		g.SetLimit(o.Parallel)
	} else {
		g.SetLimit(1)
	}
	for i, sub := range retained {
		g.Go(func() error {
			// One PCG stream per subset: reproducible for any Parallel.
			rng := rand.New(rand.NewPCG(o.Seed, uint64(i)+1))
			cov, err := resampleSubset(m, sub, o, rng, k)
			if err != nil {
				return err
			}
			terms[i] = cov
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := mat.NewDense(k, k, nil)
	var scaled mat.Dense
	for i, term := range terms {
		scaled.Scale(retained[i].Sign, term)
		sum.Add(sum, &scaled)
	}
	if useWhite {
		hc0, err := sandwich.VCOVHC0(m)
		if err != nil {
			return nil, err
		}
		scaled.Scale(cluster.Top(subsets).Sign, hc0)
		sum.Add(sum, &scaled)
	}

	return finalize(psd.Symmetrize(sum), "boot.ClusterBoot", o.ForcePSD, o.OnWarning)
}

// validate applies the eager option checks.
func validate(o Options) error {
	if o.R < 2 {
		return fmt.Errorf("boot: R=%d replicates, need at least 2: %w", o.R, cgm.ErrInvalidInput)
	}
	if o.Type != Pairs && o.Type != Residual && o.Type != Wild {
		return fmt.Errorf("boot: unknown bootstrap type %d: %w", o.Type, cgm.ErrInvalidInput)
	}
	if o.Type == Wild {
		if o.Wild == Custom && o.Sampler == nil {
			return fmt.Errorf("boot: Wild=Custom requires a Sampler: %w", cgm.ErrInvalidInput)
		}
		if o.Wild != Custom && o.Sampler != nil {
			return fmt.Errorf("boot: Sampler set but Wild is a built-in distribution: %w", cgm.ErrInvalidInput)
		}
	}
	return nil
}

// resampleSubset runs R replicates over one subset's clusters and returns
// the empirical covariance of the replicate coefficient vectors.
func resampleSubset(m linmodel.Model, sub *cluster.Subset, o Options, rng *rand.Rand, k int) (*mat.SymDense, error) {
	replicate, err := replicator(m, sub, o, rng)
	if err != nil {
		return nil, err
	}

	coefs := mat.NewDense(o.R, k, nil)
	for r := 0; r < o.R; r++ {
		beta, err := replicate()
		if err != nil {
			return nil, fmt.Errorf("boot: replicate %d of subset %v failed: %w", r, sub.Dims, err)
		}
		coefs.SetRow(r, beta)
	}

	cov := mat.NewSymDense(k, nil)
	stat.CovarianceMatrix(cov, coefs, nil)
	return cov, nil
}

// replicator builds the per-variant resample-and-refit closure. All three
// variants draw at the granularity of the subset's distinct cluster labels.
func replicator(m linmodel.Model, sub *cluster.Subset, o Options, rng *rand.Rand) (func() ([]float64, error), error) {
	groups := sub.Groups()
	mm := len(groups)
	x := m.Design()
	y := m.Response()
	fitted := m.Fitted()
	resid := m.Residuals()
	n, k := x.Dims()

	switch o.Type {
	case Pairs:
		return func() ([]float64, error) {
			rows := make([]int, 0, n)
			for j := 0; j < mm; j++ {
				rows = append(rows, groups[rng.IntN(mm)]...)
			}
			xb := mat.NewDense(len(rows), k, nil)
			yb := make([]float64, len(rows))
			for t, r := range rows {
				xb.SetRow(t, x.RawRowView(r))
				yb[t] = y[r]
			}
			return refit(m, xb, yb)
		}, nil

	case Residual:
		return func() ([]float64, error) {
			yb := make([]float64, n)
			for _, rows := range groups {
				donor := groups[rng.IntN(mm)]
				for t, r := range rows {
					// Recycle the donor block when the recipient is larger.
					yb[r] = fitted[r] + resid[donor[t%len(donor)]]
				}
			}
			return refit(m, x, yb)
		}, nil

	case Wild:
		sample, err := wildSampler(o.Wild, o.Sampler, rng)
		if err != nil {
			return nil, err
		}
		return func() ([]float64, error) {
			yb := make([]float64, n)
			for _, rows := range groups {
				w := sample()
				for _, r := range rows {
					yb[r] = fitted[r] + w*resid[r]
				}
			}
			return refit(m, x, yb)
		}, nil
	}
	return nil, fmt.Errorf("boot: unknown bootstrap type %d: %w", o.Type, cgm.ErrInvalidInput)
}

// refit runs one replicate fit, mapping any failure to EstimationFailure.
func refit(m linmodel.Model, x *mat.Dense, y []float64) ([]float64, error) {
	fit, err := m.Refit(x, y)
	if err != nil {
		return nil, fmt.Errorf("refit: %v: %w", err, cgm.ErrEstimationFailure)
	}
	return fit.Coefficients(), nil
}

// finalize applies the shared PSD policy: repair when forced, probe-and-warn
// when a callback is listening, pass through otherwise.
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
