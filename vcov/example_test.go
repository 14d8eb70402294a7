package vcov_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/statkit/cgm/cluster"
	"github.com/statkit/cgm/linmodel"
	"github.com/statkit/cgm/vcov"
)

// ExampleClusterVCOV estimates a two-way cluster-robust covariance for a
// tiny panel: 8 observations, 4 firms, 2 years.
func ExampleClusterVCOV() {
	x := mat.NewDense(8, 2, []float64{
		1, 0.1,
		1, 1.3,
		1, 2.2,
		1, 2.9,
		1, 4.3,
		1, 5.1,
		1, 5.8,
		1, 7.2,
	})
	y := []float64{1.2, 3.1, 5.4, 6.8, 9.5, 11.2, 12.7, 15.3}
	firm := []string{"a", "a", "b", "b", "c", "c", "d", "d"}
	year := []string{"t1", "t2", "t1", "t2", "t1", "t2", "t1", "t2"}

	m, err := linmodel.Fit(x, y)
	if err != nil {
		fmt.Println("fit failed:", err)
		return
	}
	spec, err := cluster.NewSpec(firm, year)
	if err != nil {
		fmt.Println("bad clustering:", err)
		return
	}

	v, err := vcov.ClusterVCOV(m, spec, nil)
	if err != nil {
		fmt.Println("estimation failed:", err)
		return
	}

	r, c := v.Dims()
	fmt.Printf("%dx%d covariance, symmetric=%v\n", r, c, mat.Equal(v, v.T()))
	// Output:
	// 2x2 covariance, symmetric=true
}
