package smooth

import (
	"math"
	"strings"
	"testing"

	"github.com/YuminosukeSato/smoothgo/pkg/errors"
	"github.com/YuminosukeSato/smoothgo/pkg/log"
)

// wiggleData returns samples alternating between +1 and -1 on an integer
// grid. With a box kernel and degree 0 the leave-one-out errors are exact
// by hand:
//
//	h=1.2  -> each fold predicts the two distance-1 neighbors, which both
//	          carry the opposite sign, so every squared error is 4. MSE = 4.
//	h=2.5  -> the window spans distance 2; interior folds average to 0 and
//	          miss by 1, edge folds miss by 1 or 4/3. MSE = 11/9.
//	h=50   -> every fold averages the other six samples. MSE = 4/3.
//
// The middle bandwidth wins, so selection lands in the grid interior.
func wiggleData() (x, y []float64) {
	x = []float64{0, 1, 2, 3, 4, 5, 6}
	y = make([]float64, len(x))
	for i := range y {
		if i%2 == 0 {
			y[i] = 1
		} else {
			y[i] = -1
		}
	}
	return x, y
}

func TestLeaveOneOutEstimates(t *testing.T) {
	t.Run("degree 0 averages the other samples", func(t *testing.T) {
		// Wide box window: fold i predicts the mean of the other two.
		x := []float64{0, 1, 2}
		y := []float64{0, 3, 6}
		want := []float64{4.5, 3.0, 1.5}

		got, err := LeaveOneOutEstimates(x, y, BoxKernel, 10, 0)
		if err != nil {
			t.Fatalf("LeaveOneOutEstimates failed: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("Got %d estimates, want %d", len(got), len(want))
		}
		for i := range want {
			if math.Abs(got[i]-want[i]) > 1e-12 {
				t.Errorf("Estimate[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("degree 1 recovers a line exactly", func(t *testing.T) {
		// Noiseless line: every fold refits the same line from the
		// remaining samples, so each holdout is predicted exactly.
		x := []float64{0, 1, 2, 3}
		y := []float64{0, 3, 6, 9}

		got, err := LeaveOneOutEstimates(x, y, BoxKernel, 10, 1)
		if err != nil {
			t.Fatalf("LeaveOneOutEstimates failed: %v", err)
		}
		for i := range y {
			if math.Abs(got[i]-y[i]) > 1e-9 {
				t.Errorf("Estimate[%d] = %v, want %v", i, got[i], y[i])
			}
		}
	})
}

func TestLeaveOneOutEstimatesValidation(t *testing.T) {
	valid := []float64{0, 1, 2}

	tests := []struct {
		name      string
		x         []float64
		y         []float64
		kernel    Kernel
		bandwidth float64
		degree    int
		wantMsg   string
	}{
		{
			name:      "length mismatch",
			x:         []float64{0, 1, 2},
			y:         []float64{0, 1},
			kernel:    BoxKernel,
			bandwidth: 1,
			wantMsg:   "length mismatch",
		},
		{
			name:      "empty data",
			x:         []float64{},
			y:         []float64{},
			kernel:    BoxKernel,
			bandwidth: 1,
			wantMsg:   "empty data",
		},
		{
			name:      "single sample",
			x:         []float64{1},
			y:         []float64{1},
			kernel:    BoxKernel,
			bandwidth: 1,
			wantMsg:   "need at least two samples",
		},
		{
			name:      "nil kernel",
			x:         valid,
			y:         valid,
			kernel:    nil,
			bandwidth: 1,
			wantMsg:   "validation failed for parameter 'kernel'",
		},
		{
			name:      "zero bandwidth",
			x:         valid,
			y:         valid,
			kernel:    BoxKernel,
			bandwidth: 0,
			wantMsg:   "validation failed for parameter 'bandwidth'",
		},
		{
			name:      "negative degree",
			x:         valid,
			y:         valid,
			kernel:    BoxKernel,
			bandwidth: 1,
			degree:    -2,
			wantMsg:   "validation failed for parameter 'degree'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LeaveOneOutEstimates(tt.x, tt.y, tt.kernel, tt.bandwidth, tt.degree)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLeaveOneOutEstimatesFoldFailure(t *testing.T) {
	// The window at x=100 contains no other sample, so that fold is
	// singular. The error names the fold and the held-out point.
	x := []float64{0, 1, 100}
	y := []float64{0, 1, 2}

	_, err := LeaveOneOutEstimates(x, y, BoxKernel, 2, 0)
	if err == nil {
		t.Fatal("Expected fold failure, got nil")
	}
	if !strings.Contains(err.Error(), "fold 2 (holdout x=100)") {
		t.Errorf("Error %q does not name the failing fold", err.Error())
	}

	var sfe *errors.SingularFitError
	if !errors.As(err, &sfe) {
		t.Fatalf("Expected SingularFitError in the chain, got %T: %v", err, err)
	}
	if sfe.Query != 100 {
		t.Errorf("Query = %v, want 100", sfe.Query)
	}
	if !errors.Is(err, errors.ErrSingularMatrix) {
		t.Error("Expected ErrSingularMatrix in the chain")
	}
}

func TestCrossValidateBandwidths(t *testing.T) {
	x, y := wiggleData()
	candidates := []float64{1.2, 2.5, 50}

	result, err := CrossValidateBandwidths(x, y, BoxKernel, candidates, 0)
	if err != nil {
		t.Fatalf("CrossValidateBandwidths failed: %v", err)
	}

	// 4, 11/9 and 4/3, see wiggleData
	wantMSEs := []float64{4.0, 11.0 / 9.0, 4.0 / 3.0}
	if len(result.MSEs) != len(wantMSEs) {
		t.Fatalf("Got %d MSEs, want %d", len(result.MSEs), len(wantMSEs))
	}
	for i := range wantMSEs {
		if math.Abs(result.MSEs[i]-wantMSEs[i]) > 1e-12 {
			t.Errorf("MSE[%d] = %v, want %v", i, result.MSEs[i], wantMSEs[i])
		}
	}

	if result.BestIndex != 1 {
		t.Errorf("BestIndex = %d, want 1", result.BestIndex)
	}
	if result.Best != 2.5 {
		t.Errorf("Best = %v, want 2.5", result.Best)
	}
	if len(result.Bandwidths) != len(candidates) {
		t.Fatalf("Got %d bandwidths, want %d", len(result.Bandwidths), len(candidates))
	}
	for i := range candidates {
		if result.Bandwidths[i] != candidates[i] {
			t.Errorf("Bandwidths[%d] = %v, want %v", i, result.Bandwidths[i], candidates[i])
		}
	}
}

func TestCrossValidateBandwidthsNoiselessLine(t *testing.T) {
	// Noiseless line, degree 1: every window holds at least two samples in
	// every fold, so each candidate predicts the holdouts to rounding error.
	// The winner's MSE is numerically zero and repeated sweeps agree.
	errors.SetWarningHandler(func(w error) {})
	defer errors.SetWarningHandler(func(w error) {})

	x := []float64{0, 1, 2, 3, 4, 5}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 3 * v
	}
	candidates := []float64{3, 30}

	result, err := CrossValidateBandwidths(x, y, BoxKernel, candidates, 1)
	if err != nil {
		t.Fatalf("CrossValidateBandwidths failed: %v", err)
	}
	if result.MSEs[result.BestIndex] > 1e-18 {
		t.Errorf("Winner MSE = %v, want numerically zero", result.MSEs[result.BestIndex])
	}

	again, err := CrossValidateBandwidths(x, y, BoxKernel, candidates, 1)
	if err != nil {
		t.Fatalf("CrossValidateBandwidths failed on the second run: %v", err)
	}
	if again.Best != result.Best || again.BestIndex != result.BestIndex {
		t.Errorf("Selection not deterministic: %v (index %d) vs %v (index %d)",
			result.Best, result.BestIndex, again.Best, again.BestIndex)
	}
}

func TestCrossValidateBandwidthsTieBreak(t *testing.T) {
	// Duplicate candidates produce identical MSEs; the earlier one must win.
	x, y := wiggleData()
	candidates := []float64{1.2, 2.5, 2.5, 50}

	result, err := CrossValidateBandwidths(x, y, BoxKernel, candidates, 0)
	if err != nil {
		t.Fatalf("CrossValidateBandwidths failed: %v", err)
	}

	if result.MSEs[1] != result.MSEs[2] {
		t.Fatalf("Duplicate candidates scored differently: %v vs %v", result.MSEs[1], result.MSEs[2])
	}
	if result.BestIndex != 1 {
		t.Errorf("BestIndex = %d, want 1 (first of the tied candidates)", result.BestIndex)
	}
	if result.Best != 2.5 {
		t.Errorf("Best = %v, want 2.5", result.Best)
	}
}

func TestCrossValidateBandwidthsValidation(t *testing.T) {
	x, y := wiggleData()

	tests := []struct {
		name       string
		x          []float64
		y          []float64
		kernel     Kernel
		candidates []float64
		degree     int
		wantMsg    string
	}{
		{
			name:       "length mismatch",
			x:          []float64{0, 1, 2},
			y:          []float64{0, 1},
			kernel:     BoxKernel,
			candidates: []float64{1},
			wantMsg:    "length mismatch",
		},
		{
			name:       "empty data",
			x:          nil,
			y:          nil,
			kernel:     BoxKernel,
			candidates: []float64{1},
			wantMsg:    "empty data",
		},
		{
			name:       "single sample",
			x:          []float64{1},
			y:          []float64{1},
			kernel:     BoxKernel,
			candidates: []float64{1},
			wantMsg:    "need at least two samples",
		},
		{
			name:       "nil kernel",
			x:          x,
			y:          y,
			kernel:     nil,
			candidates: []float64{1},
			wantMsg:    "validation failed for parameter 'kernel'",
		},
		{
			name:       "no candidates",
			x:          x,
			y:          y,
			kernel:     BoxKernel,
			candidates: []float64{},
			wantMsg:    "validation failed for parameter 'bandwidths'",
		},
		{
			name:       "non-positive candidate",
			x:          x,
			y:          y,
			kernel:     BoxKernel,
			candidates: []float64{1.0, 0.0, 2.0},
			wantMsg:    "candidate 1 must be positive and finite",
		},
		{
			name:       "NaN candidate",
			x:          x,
			y:          y,
			kernel:     BoxKernel,
			candidates: []float64{1.0, 2.0, math.NaN()},
			wantMsg:    "candidate 2 must be positive and finite",
		},
		{
			name:       "negative degree",
			x:          x,
			y:          y,
			kernel:     BoxKernel,
			candidates: []float64{1},
			degree:     -1,
			wantMsg:    "validation failed for parameter 'degree'",
		},
		{
			name:       "NaN in samples",
			x:          []float64{0, math.NaN(), 2},
			y:          []float64{0, 1, 2},
			kernel:     BoxKernel,
			candidates: []float64{1},
			wantMsg:    "numerical instability",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CrossValidateBandwidths(tt.x, tt.y, tt.kernel, tt.candidates, tt.degree)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestCrossValidateBandwidthsAbortsOnFailure(t *testing.T) {
	// Bandwidths 0.5 and 0.6 leave every leave-one-out window empty, so
	// both candidates fail. The sweep reports the lowest-index failure even
	// though a later candidate succeeds.
	x, y := wiggleData()
	candidates := []float64{0.5, 0.6, 2.5}

	result, err := CrossValidateBandwidths(x, y, BoxKernel, candidates, 0)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if result != nil {
		t.Errorf("Expected nil result on failure, got %+v", result)
	}

	if !strings.Contains(err.Error(), "bandwidth 0.5 (candidate 0)") {
		t.Errorf("Error %q does not name candidate 0", err.Error())
	}
	if strings.Contains(err.Error(), "candidate 1") {
		t.Errorf("Error %q should report the lowest-index failure only", err.Error())
	}
	if !strings.Contains(err.Error(), "fold 0") {
		t.Errorf("Error %q does not name the failing fold", err.Error())
	}
	if !errors.Is(err, errors.ErrSingularMatrix) {
		t.Error("Expected ErrSingularMatrix in the chain")
	}
}

func TestCrossValidateBandwidthsBoundaryWarning(t *testing.T) {
	var captured []error
	errors.SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer errors.SetWarningHandler(func(w error) {})

	x, y := wiggleData()

	t.Run("winner at the grid edge warns", func(t *testing.T) {
		captured = nil

		result, err := CrossValidateBandwidths(x, y, BoxKernel, []float64{2.5, 50}, 0)
		if err != nil {
			t.Fatalf("CrossValidateBandwidths failed: %v", err)
		}
		if result.Best != 2.5 {
			t.Fatalf("Best = %v, want 2.5", result.Best)
		}

		if len(captured) != 1 {
			t.Fatalf("Expected 1 warning, got %d", len(captured))
		}
		warning, ok := captured[0].(*errors.GridBoundaryWarning)
		if !ok {
			t.Fatalf("Expected GridBoundaryWarning, got %T", captured[0])
		}
		if warning.Selected != 2.5 || warning.GridMin != 2.5 || warning.GridMax != 50 {
			t.Errorf("Warning = %+v, want Selected=2.5 GridMin=2.5 GridMax=50", warning)
		}
	})

	t.Run("interior winner does not warn", func(t *testing.T) {
		captured = nil

		_, err := CrossValidateBandwidths(x, y, BoxKernel, []float64{1.2, 2.5, 50}, 0)
		if err != nil {
			t.Fatalf("CrossValidateBandwidths failed: %v", err)
		}
		if len(captured) != 0 {
			t.Errorf("Expected no warnings, got %v", captured)
		}
	})

	t.Run("single candidate does not warn", func(t *testing.T) {
		captured = nil

		_, err := CrossValidateBandwidths(x, y, BoxKernel, []float64{2.5}, 0)
		if err != nil {
			t.Fatalf("CrossValidateBandwidths failed: %v", err)
		}
		if len(captured) != 0 {
			t.Errorf("Expected no warnings, got %v", captured)
		}
	})
}

func TestCrossValidateBandwidthsLogsSweep(t *testing.T) {
	provider, buffer := log.NewTestLoggerProvider(log.LevelDebug)
	log.SetLoggerProvider(provider)
	defer log.SetLoggerProvider(nil)

	x, y := wiggleData()
	if _, err := CrossValidateBandwidths(x, y, BoxKernel, []float64{1.2, 2.5, 50}, 0); err != nil {
		t.Fatalf("CrossValidateBandwidths failed: %v", err)
	}

	output := buffer.String()
	if !strings.Contains(output, "evaluated bandwidth candidate") {
		t.Error("Expected per-candidate log entries")
	}
	if !strings.Contains(output, "selected bandwidth") {
		t.Error("Expected selection log entry")
	}
	if !strings.Contains(output, "smooth.bandwidth") {
		t.Error("Expected the component name in log entries")
	}
	if !strings.Contains(output, log.BestIndexKey) {
		t.Errorf("Expected %q field in log entries", log.BestIndexKey)
	}
}

func TestCVResultString(t *testing.T) {
	result := &CVResult{
		Bandwidths: []float64{1.2, 2.5, 50},
		MSEs:       []float64{4.0, 11.0 / 9.0, 4.0 / 3.0},
		Best:       2.5,
		BestIndex:  1,
	}

	s := result.String()
	if !strings.Contains(s, "bandwidth cross validation (3 candidates):") {
		t.Errorf("String() = %q, missing header", s)
	}
	if !strings.Contains(s, "* h=2.5") {
		t.Errorf("String() = %q, missing winner marker", s)
	}
}

func TestSelectBandwidth(t *testing.T) {
	t.Run("returns the winner", func(t *testing.T) {
		x, y := wiggleData()

		got, err := SelectBandwidth(x, y, BoxKernel, []float64{1.2, 2.5, 50}, 0)
		if err != nil {
			t.Fatalf("SelectBandwidth failed: %v", err)
		}
		if got != 2.5 {
			t.Errorf("SelectBandwidth = %v, want 2.5", got)
		}
	})

	t.Run("propagates sweep errors", func(t *testing.T) {
		x, y := wiggleData()

		got, err := SelectBandwidth(x, y, BoxKernel, nil, 0)
		if err == nil {
			t.Fatal("Expected error for empty candidates, got nil")
		}
		if got != 0 {
			t.Errorf("Expected zero bandwidth on error, got %v", got)
		}
	})
}

func TestLogSpacedBandwidths(t *testing.T) {
	t.Run("spans the range in log scale", func(t *testing.T) {
		got, err := LogSpacedBandwidths(0.1, 10, 3)
		if err != nil {
			t.Fatalf("LogSpacedBandwidths failed: %v", err)
		}

		want := []float64{0.1, 1.0, 10.0}
		if len(got) != len(want) {
			t.Fatalf("Got %d candidates, want %d", len(got), len(want))
		}
		for i := range want {
			if math.Abs(got[i]-want[i]) > 1e-9*want[i] {
				t.Errorf("Candidate[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name    string
			lo, hi  float64
			n       int
			wantMsg string
		}{
			{"too few points", 0.1, 10, 1, "validation failed for parameter 'n'"},
			{"zero lower bound", 0, 10, 5, "validation failed for parameter 'lo'"},
			{"negative lower bound", -1, 10, 5, "validation failed for parameter 'lo'"},
			{"NaN upper bound", 0.1, math.NaN(), 5, "validation failed for parameter 'hi'"},
			{"infinite upper bound", 0.1, math.Inf(1), 5, "validation failed for parameter 'hi'"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := LogSpacedBandwidths(tt.lo, tt.hi, tt.n)
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantMsg) {
					t.Errorf("Error %q does not contain %q", err.Error(), tt.wantMsg)
				}
			})
		}
	})
}
