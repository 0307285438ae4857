// Package log defines standard attribute keys for smoothing operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in smoothgo. Using these standard keys enables better
// log analysis, monitoring, and debugging of smoothing and bandwidth-selection
// workflows.
//
// The attributes are organized into categories:
//   - Model and Operation Context
//   - Data Shape and Characteristics
//   - Smoothing Parameters and Selection
//   - Performance and Error Context
//
// These keys follow a hierarchical naming convention (e.g., "model.name",
// "data.samples") to enable structured log analysis and filtering.

package log

// Model and Operation Context
// These attributes identify the model type and the operation being performed.
const (
	// ModelNameKey identifies the type of smoother.
	// Example: "KernelSmoother"
	ModelNameKey = "model.name"

	// OperationKey specifies the smoothing operation being performed.
	// Standard values: "evaluate", "loo_estimates", "select_bandwidth"
	OperationKey = "smooth.operation"

	// ComponentKey identifies which component or package is performing the operation.
	// Examples: "smooth", "smooth.bandwidth", "metrics"
	ComponentKey = "smooth.component"
)

// Data Shape and Characteristics
// These attributes describe the structure of the data being processed.
const (
	// SamplesKey indicates the number of samples in the training set.
	SamplesKey = "data.samples"

	// QueriesKey indicates the number of query points being evaluated.
	QueriesKey = "data.queries"
)

// Smoothing Parameters and Selection
// These attributes capture smoother configuration and cross-validation state.
const (
	// KernelKey names the kernel in use.
	// Examples: "box", "gaussian", "custom"
	KernelKey = "smooth.kernel"

	// BandwidthKey records the bandwidth of a smoother or candidate.
	BandwidthKey = "smooth.bandwidth"

	// DegreeKey records the local polynomial degree.
	DegreeKey = "smooth.degree"

	// CandidatesKey indicates the number of candidate bandwidths under evaluation.
	CandidatesKey = "cv.candidates"

	// CandidateIndexKey records the index of a candidate within the grid.
	CandidateIndexKey = "cv.candidate_index"

	// MSEKey records a leave-one-out mean squared error.
	MSEKey = "cv.mse"

	// BestIndexKey records the index of the winning candidate.
	BestIndexKey = "cv.best_index"
)

// Performance and Error Context
// These attributes capture timing information and error details.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "LENGTH_MISMATCH", "SINGULAR_FIT", "EMPTY_DATA"
	ErrorCodeKey = "error.code"

	// SuggestionKey provides helpful suggestions for resolving issues.
	// Examples: "widen the candidate grid", "increase the bandwidth"
	SuggestionKey = "error.suggestion"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard smoothing operations
	OperationEvaluate = "evaluate"
	OperationLOO      = "loo_estimates"
	OperationSelect   = "select_bandwidth"

	// Standard error codes
	ErrorLengthMismatch = "LENGTH_MISMATCH"
	ErrorSingularFit    = "SINGULAR_FIT"
	ErrorEmptyData      = "EMPTY_DATA"
	ErrorInvalidInput   = "INVALID_INPUT"
)
