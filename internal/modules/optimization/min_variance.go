package optimization

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// MinVariance minimizes portfolio variance w'Sigma w with no return term,
// the defensive leg of the ensemble.
type MinVariance struct{}

// NewMinVariance creates a minimum-variance optimizer.
func NewMinVariance() *MinVariance {
	return &MinVariance{}
}

// Name identifies the optimizer in ensemble shares and logs.
func (o *MinVariance) Name() string { return "minimum_variance" }

// Solve runs the bounded minimum-variance program starting from equal
// weights, returning the equal-weight fallback on non-convergence.
func (o *MinVariance) Solve(mu []float64, sigma *mat.SymDense, b Bounds) Result {
	n := sigma.SymmetricDim()
	if n == 0 {
		return Result{Weights: nil, Converged: false}
	}
	if n == 1 {
		return Result{Weights: []float64{1.0}, Converged: true}
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			w := projectToBounds(x, b)

			sum := 0.0
			for i := 0; i < n; i++ {
				sum += w[i]
			}

			return portfolioVariance(w, sigma) + sumPenaltyWeight*(sum-1.0)*(sum-1.0)
		},
		Grad: func(grad, x []float64) {
			w := projectToBounds(x, b)

			sigmaW := make([]float64, n)
			sigmaDot(sigmaW, sigma, w)

			sum := 0.0
			for i := 0; i < n; i++ {
				sum += w[i]
			}

			for i := 0; i < n; i++ {
				grad[i] = 2*sigmaW[i] + 2*sumPenaltyWeight*(sum-1.0)
			}
		},
	}

	x, ok := minimize(problem, equalWeights(n), &optimize.BFGS{}, &optimize.NelderMead{})
	if !ok {
		return fallbackResult(n)
	}

	return Result{Weights: clipAndNormalize(projectToBounds(x, b)), Converged: true}
}
