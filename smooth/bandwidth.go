package smooth

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/smoothgo/core/parallel"
	"github.com/YuminosukeSato/smoothgo/metrics"
	"github.com/YuminosukeSato/smoothgo/pkg/errors"
	"github.com/YuminosukeSato/smoothgo/pkg/log"
)

// LeaveOneOutEstimates computes an out-of-sample prediction for every sample:
// estimate i comes from a smoother built on all samples except (x[i], y[i]),
// evaluated at x[i]. Comparing the estimates against y measures how well the
// bandwidth generalizes.
//
// At least two samples are required. If any fold fails, the fold's error is
// returned wrapped with the fold index and the held-out point.
func LeaveOneOutEstimates(x, y []float64, kernel Kernel, bandwidth float64, degree int) ([]float64, error) {
	const op = "LeaveOneOutEstimates"

	if len(x) != len(y) {
		return nil, errors.NewLengthMismatchError(op, len(x), len(y))
	}
	if len(x) == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if len(x) < 2 {
		return nil, errors.NewValueError(op, "need at least two samples to hold one out")
	}
	if kernel == nil {
		return nil, errors.NewValidationError("kernel", "must not be nil", nil)
	}
	if bandwidth <= 0 || math.IsNaN(bandwidth) || math.IsInf(bandwidth, 0) {
		return nil, errors.NewValidationError("bandwidth", "must be positive and finite", bandwidth)
	}
	if degree < 0 {
		return nil, errors.NewValidationError("degree", "must be non-negative", degree)
	}

	n := len(x)
	estimates := make([]float64, n)
	trainX := make([]float64, 0, n-1)
	trainY := make([]float64, 0, n-1)
	query := make([]float64, 1)

	for i := 0; i < n; i++ {
		trainX = append(trainX[:0], x[:i]...)
		trainX = append(trainX, x[i+1:]...)
		trainY = append(trainY[:0], y[:i]...)
		trainY = append(trainY, y[i+1:]...)
		query[0] = x[i]

		est, err := Smooth(trainX, trainY, query, kernel, bandwidth, degree)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: fold %d (holdout x=%g)", op, i, x[i])
		}
		estimates[i] = est[0]
	}

	return estimates, nil
}

// CVResult holds the outcome of a bandwidth cross validation sweep.
type CVResult struct {
	// Bandwidths are the candidates, in the order the caller gave them.
	Bandwidths []float64
	// MSEs[i] is the leave-one-out mean squared error of Bandwidths[i].
	MSEs []float64
	// Best is the candidate with the smallest MSE. Ties go to the earliest
	// candidate.
	Best float64
	// BestIndex is the position of Best in Bandwidths.
	BestIndex int
}

// String returns a per-candidate summary with the winner marked.
func (r *CVResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "bandwidth cross validation (%d candidates):\n", len(r.Bandwidths))
	for i, h := range r.Bandwidths {
		marker := " "
		if i == r.BestIndex {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s h=%-12.6g mse=%.6g\n", marker, h, r.MSEs[i])
	}
	return sb.String()
}

// CrossValidateBandwidths scores every candidate bandwidth by its
// leave-one-out mean squared error and reports the full curve together with
// the winner. Candidates are evaluated in parallel; they are independent, so
// each iteration writes only its own slot.
//
// A failing candidate aborts the whole sweep: the returned error is the
// lowest-index failing candidate's, wrapped with its bandwidth. Callers that
// want to tolerate failing candidates filter the grid first.
//
// When more than one candidate is given and the winner sits at the grid's
// minimum or maximum, a GridBoundaryWarning is emitted through the package
// errors warning hook. The sweep still succeeds; the warning is a hint that
// the true optimum may lie outside the grid.
func CrossValidateBandwidths(x, y []float64, kernel Kernel, bandwidths []float64, degree int) (*CVResult, error) {
	const op = "CrossValidateBandwidths"

	if len(x) != len(y) {
		return nil, errors.NewLengthMismatchError(op, len(x), len(y))
	}
	if len(x) == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if len(x) < 2 {
		return nil, errors.NewValueError(op, "need at least two samples to hold one out")
	}
	if kernel == nil {
		return nil, errors.NewValidationError("kernel", "must not be nil", nil)
	}
	if len(bandwidths) == 0 {
		return nil, errors.NewValidationError("bandwidths", "must not be empty", bandwidths)
	}
	for i, h := range bandwidths {
		if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
			return nil, errors.NewValidationError("bandwidths",
				fmt.Sprintf("candidate %d must be positive and finite", i), h)
		}
	}
	if degree < 0 {
		return nil, errors.NewValidationError("degree", "must be non-negative", degree)
	}
	if err := errors.CheckNumericalStability(op+": x", x, -1); err != nil {
		return nil, err
	}
	if err := errors.CheckNumericalStability(op+": y", y, -1); err != nil {
		return nil, err
	}

	mses := make([]float64, len(bandwidths))
	errs := make([]error, len(bandwidths))

	parallel.ParallelizeWithThreshold(len(bandwidths), 1, func(start, end int) {
		for i := start; i < end; i++ {
			estimates, err := LeaveOneOutEstimates(x, y, kernel, bandwidths[i], degree)
			if err != nil {
				errs[i] = errors.Wrapf(err, "%s: bandwidth %g (candidate %d)", op, bandwidths[i], i)
				continue
			}
			mse, err := metrics.MSE(y, estimates)
			if err != nil {
				errs[i] = errors.Wrapf(err, "%s: bandwidth %g (candidate %d)", op, bandwidths[i], i)
				continue
			}
			mses[i] = mse
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	// Strict < keeps the earliest candidate on ties
	logger := log.GetLoggerWithName("smooth.bandwidth")
	best := 0
	for i := range bandwidths {
		logger.Debug("evaluated bandwidth candidate",
			log.CandidateIndexKey, i,
			log.BandwidthKey, bandwidths[i],
			log.MSEKey, mses[i],
		)
		if i > 0 && mses[i] < mses[best] {
			best = i
		}
	}

	result := &CVResult{
		Bandwidths: append([]float64(nil), bandwidths...),
		MSEs:       mses,
		Best:       bandwidths[best],
		BestIndex:  best,
	}

	if len(bandwidths) > 1 {
		gridMin := floats.Min(bandwidths)
		gridMax := floats.Max(bandwidths)
		if result.Best == gridMin || result.Best == gridMax {
			errors.Warn(errors.NewGridBoundaryWarning(result.Best, gridMin, gridMax))
		}
	}

	logger.Debug("selected bandwidth",
		log.BandwidthKey, result.Best,
		log.BestIndexKey, result.BestIndex,
		log.CandidatesKey, len(bandwidths),
	)

	return result, nil
}

// SelectBandwidth returns the candidate bandwidth whose leave-one-out mean
// squared error is smallest. Ties go to the earliest candidate. See
// CrossValidateBandwidths for the failure policy and the boundary warning.
func SelectBandwidth(x, y []float64, kernel Kernel, bandwidths []float64, degree int) (float64, error) {
	result, err := CrossValidateBandwidths(x, y, kernel, bandwidths, degree)
	if err != nil {
		return 0, err
	}
	return result.Best, nil
}

// LogSpacedBandwidths builds a candidate grid of n bandwidths spaced evenly
// in log scale from lo to hi inclusive. Log spacing covers several orders of
// magnitude with few candidates, which suits bandwidth search.
func LogSpacedBandwidths(lo, hi float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, errors.NewValidationError("n", "must be at least 2", n)
	}
	if lo <= 0 || math.IsNaN(lo) || math.IsInf(lo, 0) {
		return nil, errors.NewValidationError("lo", "must be positive and finite", lo)
	}
	if hi <= 0 || math.IsNaN(hi) || math.IsInf(hi, 0) {
		return nil, errors.NewValidationError("hi", "must be positive and finite", hi)
	}
	return floats.LogSpan(make([]float64, n), lo, hi), nil
}
