package vcov_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/statkit/cgm"
	"github.com/statkit/cgm/cluster"
	"github.com/statkit/cgm/linmodel"
	"github.com/statkit/cgm/vcov"
)

// benchData builds an n-observation, k-regressor panel with three
// clustering dimensions.
func benchData(b *testing.B, n, k int) (linmodel.Model, *cluster.Spec) {
	b.Helper()
	rng := rand.New(rand.NewPCG(3, 14))

	x := mat.NewDense(n, k, nil)
	y := make([]float64, n)
	c1 := make([]string, n)
	c2 := make([]string, n)
	c3 := make([]string, n)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		y[i] = 1
		for j := 1; j < k; j++ {
			v := rng.NormFloat64()
			x.Set(i, j, v)
			y[i] += v
		}
		y[i] += rng.NormFloat64()
		c1[i] = fmt.Sprintf("a%d", i%20)
		c2[i] = fmt.Sprintf("b%d", (i/20)%10)
		c3[i] = fmt.Sprintf("c%d", i%7)
	}

	m, err := linmodel.Fit(x, y)
	if err != nil {
		b.Fatalf("fit: %v", err)
	}
	spec, err := cluster.NewSpec(c1, c2, c3)
	if err != nil {
		b.Fatalf("spec: %v", err)
	}
	return m, spec
}

// BenchmarkClusterVCOV_D3 measures the full three-way pipeline (7 signed
// terms) on 2000 observations.
func BenchmarkClusterVCOV_D3(b *testing.B) {
	m, spec := benchData(b, 2000, 4)
	opts := vcov.DefaultOptions()
	opts.White = cgm.WhiteOff

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := vcov.ClusterVCOV(m, spec, &opts); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkClusterVCOV_D3Parallel is the same workload with four workers.
func BenchmarkClusterVCOV_D3Parallel(b *testing.B) {
	m, spec := benchData(b, 2000, 4)
	opts := vcov.DefaultOptions()
	opts.White = cgm.WhiteOff
	opts.Parallel = 4

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := vcov.ClusterVCOV(m, spec, &opts); err != nil {
			b.Fatal(err)
		}
	}
}
