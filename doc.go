// Package smoothgo provides local polynomial kernel smoothing for Go,
// designed for cleaning up noisy one-dimensional measurement series.
//
// smoothgo estimates a smooth function from scattered (x, y) samples by
// fitting small weighted polynomials around every query point, and can pick
// the smoothing bandwidth from the data with leave-one-out cross validation.
//
// # Features
//
// - Local polynomial fits: local means, local lines, or any degree
// - Pluggable kernels: box and gaussian included, custom kernels welcome
// - Data-driven bandwidth selection via leave-one-out cross validation
// - Parallel candidate sweeps across CPU cores
// - Robust Error Handling: structured errors with stack traces
//
// # Installation
//
// Install smoothgo using go get:
//
//	go get github.com/YuminosukeSato/smoothgo
//
// # Quick Start
//
// Here's a simple example of smoothing a noisy series:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//	    "github.com/YuminosukeSato/smoothgo/smooth"
//	)
//
//	func main() {
//	    // Noisy measurements
//	    x := []float64{0, 1, 2, 3, 4, 5}
//	    y := []float64{0.1, 0.9, 2.2, 2.8, 4.1, 5.2}
//
//	    // Pick a bandwidth by cross validation
//	    grid, err := smooth.LogSpacedBandwidths(0.5, 5, 8)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    h, err := smooth.SelectBandwidth(x, y, smooth.GaussianKernel, grid, 1)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Estimate the underlying function on a fine grid
//	    queries := []float64{0.5, 1.5, 2.5, 3.5, 4.5}
//	    estimates, err := smooth.Smooth(x, y, queries, smooth.GaussianKernel, h, 1)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println("Estimates:", estimates)
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - smooth: Kernel smoothing and bandwidth selection
//   - metrics: Evaluation metrics (MSE, RMSE, MAE, R²)
//   - core/parallel: Parallel processing utilities
//   - pkg/errors: Structured errors and the warning hook
//   - pkg/log: Structured logging interface and slog wiring
//
// # Performance
//
// Bandwidth sweeps evaluate candidates in parallel:
//
//   - One goroutine chunk per CPU core across the candidate grid
//   - Smoother instances are immutable and safe for concurrent use
//   - Per-query workspaces are reused inside Evaluate
//
// # Contributing
//
// Contributions are welcome! Please see our GitHub repository:
// https://github.com/YuminosukeSato/smoothgo
//
// # License
//
// smoothgo is released under the MIT License.
package smoothgo
