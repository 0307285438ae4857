package smooth_test

import (
	"fmt"

	"github.com/YuminosukeSato/smoothgo/smooth"
)

func ExampleSmooth() {
	// Noiseless line y = 2x + 1: a degree 1 fit reproduces it exactly.
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{1, 3, 5, 7, 9}
	queries := []float64{0.5, 2.0, 3.5}

	estimates, err := smooth.Smooth(x, y, queries, smooth.BoxKernel, 2.5, 1)
	if err != nil {
		fmt.Println(err)
		return
	}

	for i, q := range queries {
		fmt.Printf("f(%.1f) = %.3f\n", q, estimates[i])
	}
	// Output:
	// f(0.5) = 2.000
	// f(2.0) = 5.000
	// f(3.5) = 8.000
}

func ExampleKernelSmoother() {
	x := []float64{0, 1}
	y := []float64{0, 1}

	ks, err := smooth.NewKernelSmoother(x, y, smooth.GaussianKernel,
		smooth.WithBandwidth(1.0), smooth.WithDegree(0))
	if err != nil {
		fmt.Println(err)
		return
	}

	estimates, err := ks.Evaluate([]float64{0.0, 0.5, 1.0})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("bandwidth: %.1f degree: %d\n", ks.Bandwidth(), ks.Degree())
	for i, q := range []float64{0.0, 0.5, 1.0} {
		fmt.Printf("f(%.1f) = %.4f\n", q, estimates[i])
	}
	// Output:
	// bandwidth: 1.0 degree: 0
	// f(0.0) = 0.2689
	// f(0.5) = 0.5000
	// f(1.0) = 0.7311
}

func ExampleSelectBandwidth() {
	// Alternating samples: a medium window averages the oscillation away
	// better than the narrow or the very wide one.
	x := []float64{0, 1, 2, 3, 4, 5, 6}
	y := []float64{1, -1, 1, -1, 1, -1, 1}
	candidates := []float64{1.2, 2.5, 50}

	best, err := smooth.SelectBandwidth(x, y, smooth.BoxKernel, candidates, 0)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("best bandwidth: %g\n", best)
	// Output:
	// best bandwidth: 2.5
}

func ExampleCrossValidateBandwidths() {
	x := []float64{0, 1, 2, 3, 4, 5, 6}
	y := []float64{1, -1, 1, -1, 1, -1, 1}

	result, err := smooth.CrossValidateBandwidths(x, y, smooth.BoxKernel, []float64{1.2, 2.5, 50}, 0)
	if err != nil {
		fmt.Println(err)
		return
	}

	for i, h := range result.Bandwidths {
		fmt.Printf("h=%g mse=%.4f\n", h, result.MSEs[i])
	}
	fmt.Printf("selected: %g (index %d)\n", result.Best, result.BestIndex)
	// Output:
	// h=1.2 mse=4.0000
	// h=2.5 mse=1.2222
	// h=50 mse=1.3333
	// selected: 2.5 (index 1)
}

func ExampleLogSpacedBandwidths() {
	grid, err := smooth.LogSpacedBandwidths(0.1, 10, 3)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, h := range grid {
		fmt.Printf("%.1f\n", h)
	}
	// Output:
	// 0.1
	// 1.0
	// 10.0
}
