// Package smooth implements local polynomial kernel smoothing for noisy
// one-dimensional samples.
//
// A KernelSmoother estimates a smooth function from measurement pairs (x, y).
// At every query point it fits a weighted polynomial to the nearby samples,
// with weights assigned by a kernel function scaled by a bandwidth, and
// reports the fitted value at the query. Bandwidths can be chosen from data
// with leave-one-out cross validation, see SelectBandwidth.
package smooth

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/smoothgo/pkg/errors"
)

// Defaults applied by NewKernelSmoother when no option overrides them.
const (
	DefaultBandwidth = 1.0
	DefaultDegree    = 1
)

// KernelSmoother estimates a smooth function given noisy samples.
//
// The smoother is immutable: the constructor copies its inputs, and no method
// modifies the receiver, so a single instance is safe for concurrent use.
type KernelSmoother struct {
	x         []float64
	y         []float64
	kernel    Kernel
	bandwidth float64
	degree    int
}

// KernelSmootherOption configures a KernelSmoother at construction.
type KernelSmootherOption func(*KernelSmoother)

// WithBandwidth sets the smoothing bandwidth. Larger bandwidths average over
// wider neighborhoods and give smoother estimates.
func WithBandwidth(h float64) KernelSmootherOption {
	return func(ks *KernelSmoother) {
		ks.bandwidth = h
	}
}

// WithDegree sets the degree of the local polynomials. Degree 0 is a local
// weighted average, degree 1 a local line.
func WithDegree(d int) KernelSmootherOption {
	return func(ks *KernelSmoother) {
		ks.degree = d
	}
}

// NewKernelSmoother creates a smoother over the sample pairs (x[i], y[i]).
//
// x and y must have equal nonzero length and contain only finite values;
// kernel must be non-nil. The bandwidth must be positive and finite and the
// degree non-negative. No relationship between the sample count and the
// degree is enforced here: a degree too high for the data surfaces as a
// singular fit during evaluation.
func NewKernelSmoother(x, y []float64, kernel Kernel, opts ...KernelSmootherOption) (*KernelSmoother, error) {
	const op = "NewKernelSmoother"

	if len(x) != len(y) {
		return nil, errors.NewLengthMismatchError(op, len(x), len(y))
	}
	if len(x) == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if kernel == nil {
		return nil, errors.NewValidationError("kernel", "must not be nil", nil)
	}
	if err := errors.CheckNumericalStability(op+": x", x, -1); err != nil {
		return nil, err
	}
	if err := errors.CheckNumericalStability(op+": y", y, -1); err != nil {
		return nil, err
	}

	ks := &KernelSmoother{
		x:         append([]float64(nil), x...),
		y:         append([]float64(nil), y...),
		kernel:    kernel,
		bandwidth: DefaultBandwidth,
		degree:    DefaultDegree,
	}
	for _, opt := range opts {
		opt(ks)
	}

	if ks.bandwidth <= 0 || math.IsNaN(ks.bandwidth) || math.IsInf(ks.bandwidth, 0) {
		return nil, errors.NewValidationError("bandwidth", "must be positive and finite", ks.bandwidth)
	}
	if ks.degree < 0 {
		return nil, errors.NewValidationError("degree", "must be non-negative", ks.degree)
	}

	return ks, nil
}

// Bandwidth returns the smoothing bandwidth of the estimator.
func (ks *KernelSmoother) Bandwidth() float64 {
	return ks.bandwidth
}

// Degree returns the degree of the local polynomials.
func (ks *KernelSmoother) Degree() int {
	return ks.degree
}

// NSamples returns the number of samples the smoother was built on.
func (ks *KernelSmoother) NSamples() int {
	return len(ks.x)
}

// Evaluate computes the estimated function value at every query point,
// in query order.
//
// For each query q the smoother builds the centered polynomial design matrix
// with columns (x[i]-q)^p for p = 0..degree, weights each sample by
// kernel((x[i]-q)/bandwidth)/bandwidth, and solves the weighted normal
// equations. The estimate is the constant coefficient of the local fit.
//
// When the normal equations are singular at some query, for example when a
// compact kernel gives zero weight to every sample, Evaluate fails with a
// SingularFitError naming that query point; no partial results are returned.
func (ks *KernelSmoother) Evaluate(xs []float64) (result []float64, err error) {
	const op = "KernelSmoother.Evaluate"
	defer errors.Recover(&err, op)

	if err := errors.CheckNumericalStability(op+": queries", xs, -1); err != nil {
		return nil, err
	}

	n := len(ks.x)
	cols := ks.degree + 1
	ynew := make([]float64, len(xs))

	// Workspaces reused across queries
	z := make([]float64, n)
	design := mat.NewDense(n, cols, nil)
	weights := mat.NewDiagDense(n, nil)
	wx := mat.NewDense(n, cols, nil)
	normal := mat.NewDense(cols, cols, nil)
	rhs := mat.NewVecDense(cols, nil)
	yVec := mat.NewVecDense(n, ks.y)

	for i, q := range xs {
		// Centered polynomial design matrix: column p holds (x - q)^p
		for r := 0; r < n; r++ {
			dx := ks.x[r] - q
			pow := 1.0
			for p := 0; p < cols; p++ {
				design.Set(r, p, pow)
				pow *= dx
			}
			z[r] = dx / ks.bandwidth
		}

		kw := ks.kernel(z)
		if len(kw) != n {
			return nil, errors.NewValueError(op, "kernel returned a weight slice of the wrong length")
		}
		for r := 0; r < n; r++ {
			weights.SetDiag(r, kw[r]/ks.bandwidth)
		}

		// Normal equations (XᵀWX)β = XᵀWy with W = diag(w)
		wx.Mul(weights, design)
		normal.Mul(design.T(), wx)
		if err := errors.CheckMatrix(op+": normal equations", normal, cols, cols, i); err != nil {
			return nil, err
		}
		rhs.MulVec(wx.T(), yVec)

		var beta mat.VecDense
		if err := beta.SolveVec(normal, rhs); err != nil {
			return nil, errors.NewSingularFitError(op, q, errors.ErrSingularMatrix)
		}

		est := beta.AtVec(0)
		if err := errors.CheckScalar(op, est, i); err != nil {
			return nil, err
		}
		ynew[i] = est
	}

	return ynew, nil
}

// Smooth estimates a smooth function at the query points xs using the noisy
// measurements (x, y). It is a one-shot convenience over NewKernelSmoother
// and Evaluate.
func Smooth(x, y, xs []float64, kernel Kernel, bandwidth float64, degree int) ([]float64, error) {
	ks, err := NewKernelSmoother(x, y, kernel, WithBandwidth(bandwidth), WithDegree(degree))
	if err != nil {
		return nil, err
	}
	return ks.Evaluate(xs)
}
