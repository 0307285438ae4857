package smooth

import "math"

// Kernel computes non-negative weights from standardized distances.
// A standardized distance is (x - query) / bandwidth; the kernel decides how
// quickly a sample's influence decays with that distance.
//
// Implementations must be pure functions: the returned slice has the same
// length as z, and z itself is never modified. Any function with this
// signature can be used, so callers are free to supply their own kernels.
type Kernel func(z []float64) []float64

// BoxKernel returns 0.5 for distances strictly inside (-1, 1) and 0 outside.
// The support is compact: samples further than one bandwidth from the query
// receive exactly zero weight, which can make the local fit singular when no
// sample falls inside the window.
func BoxKernel(z []float64) []float64 {
	w := make([]float64, len(z))
	for i, v := range z {
		if math.Abs(v) < 1.0 {
			w[i] = 0.5
		}
	}
	return w
}

// GaussianKernel returns exp(-z²) for each distance. Every sample receives a
// strictly positive weight, decaying rapidly beyond one bandwidth.
func GaussianKernel(z []float64) []float64 {
	w := make([]float64, len(z))
	for i, v := range z {
		w[i] = math.Exp(-v * v)
	}
	return w
}
