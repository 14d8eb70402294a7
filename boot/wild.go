package boot

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/statkit/cgm"
)

// Mammen two-point constants: weights −(√5−1)/2 and (√5+1)/2, the smaller
// drawn with probability (√5+1)/(2√5).
var (
	mammenLo   = -(math.Sqrt(5) - 1) / 2
	mammenHi   = (math.Sqrt(5) + 1) / 2
	mammenProb = (math.Sqrt(5) + 1) / (2 * math.Sqrt(5))
)

// wildSampler binds a multiplier distribution to a replicate RNG stream.
// The custom sampler ignores rng by construction (it carries its own
// randomness), which keeps custom runs reproducible only as far as the
// caller's sampler is.
func wildSampler(dist WildDist, sampler func() float64, rng *rand.Rand) (func() float64, error) {
	switch dist {
	case Rademacher:
		return func() float64 {
			if rng.Float64() < 0.5 {
				return -1
			}
			return 1
		}, nil
	case Mammen:
		return func() float64 {
			if rng.Float64() < mammenProb {
				return mammenLo
			}
			return mammenHi
		}, nil
	case Normal:
		// *rand.Rand satisfies rand.Source, so the normal draws consume
		// the same per-subset stream as the other distributions.
		norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
		return norm.Rand, nil
	case Custom:
		return sampler, nil
	}
	return nil, fmt.Errorf("boot: unknown wild distribution %d: %w", dist, cgm.ErrInvalidInput)
}
