// Package optimization provides the portfolio optimizer suite: four
// independent bounded solvers over the same expected returns and
// covariance, blended into a single ensemble allocation.
package optimization

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// Solver iteration caps. Every solve terminates with either a converged
// result or the equal-weight fallback; nothing blocks unbounded.
const (
	maxMajorIterations = 500
	maxFuncEvaluations = 20000
	sumPenaltyWeight   = 1000.0
	volatilityGuard    = 1e-10
	normalizationGuard = 1e-10
)

// Bounds holds the per-asset weight bounds for a solve.
type Bounds struct {
	Min float64
	Max float64
}

// Result is the outcome of one optimizer solve. When Converged is false
// the weights are the documented equal-weight fallback.
type Result struct {
	Weights   []float64
	Converged bool
}

// Optimizer solves for portfolio weights given expected returns mu and
// covariance sigma, subject to bounds and the full-investment constraint.
// Implementations start from equal weights and fall back to equal weights
// on non-convergence instead of returning an error.
type Optimizer interface {
	Name() string
	Solve(mu []float64, sigma *mat.SymDense, b Bounds) Result
}

// equalWeights returns the 1/N allocation, the common starting point and
// fallback for every optimizer.
func equalWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0 / float64(n)
	}
	return w
}

// fallbackResult is the shared non-convergence outcome.
func fallbackResult(n int) Result {
	return Result{Weights: equalWeights(n), Converged: false}
}

// projectToBounds clips each weight into [b.Min, b.Max].
func projectToBounds(x []float64, b Bounds) []float64 {
	proj := make([]float64, len(x))
	for i := range x {
		proj[i] = math.Max(b.Min, math.Min(b.Max, x[i]))
	}
	return proj
}

// clipAndNormalize zeroes negative weights and rescales to sum 1.
// A degenerate all-zero vector falls back to equal weights.
func clipAndNormalize(x []float64) []float64 {
	out := make([]float64, len(x))
	sum := 0.0
	for i, v := range x {
		if v > 0 {
			out[i] = v
			sum += v
		}
	}
	if sum < normalizationGuard {
		return equalWeights(len(x))
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// sigmaDot computes (sigma * w) into dst.
func sigmaDot(dst []float64, sigma *mat.SymDense, w []float64) {
	n := len(w)
	for i := 0; i < n; i++ {
		s := 0.0
		for j := 0; j < n; j++ {
			s += sigma.At(i, j) * w[j]
		}
		dst[i] = s
	}
}

// portfolioVariance computes w' * sigma * w.
func portfolioVariance(w []float64, sigma *mat.SymDense) float64 {
	n := len(w)
	variance := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			variance += w[i] * w[j] * sigma.At(i, j)
		}
	}
	return variance
}

// solverSettings returns the shared iteration-capped settings.
func solverSettings() *optimize.Settings {
	return &optimize.Settings{
		MajorIterations: maxMajorIterations,
		FuncEvaluations: maxFuncEvaluations,
	}
}

// accepted reports whether an optimize status counts as convergence.
func accepted(status optimize.Status) bool {
	switch status {
	case optimize.Success, optimize.GradientThreshold, optimize.FunctionConvergence:
		return true
	default:
		return false
	}
}

// minimize runs the problem with each method in turn, returning the first
// accepted solution. A method error or unaccepted status moves on to the
// next method; exhausting all methods reports non-convergence.
func minimize(problem optimize.Problem, initial []float64, methods ...optimize.Method) ([]float64, bool) {
	for _, method := range methods {
		result, err := optimize.Minimize(problem, initial, solverSettings(), method)
		if err != nil || result == nil {
			continue
		}
		if accepted(result.Status) {
			return result.X, true
		}
	}
	return nil, false
}
