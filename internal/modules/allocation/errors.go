package allocation

import "errors"

// Pipeline failure reasons surfaced in the fallback response's error
// field. The pipeline itself never returns these to callers as Go
// errors; they exist so tests and logs can match on stable values.
var (
	// ErrNoCurrentWeights is reported when the request carries no
	// holdings to optimize from.
	ErrNoCurrentWeights = errors.New("current_weights must not be empty")
	// ErrOptimizationPanic is reported when the numerical pipeline
	// panicked and was recovered.
	ErrOptimizationPanic = errors.New("internal error during optimization")
)
