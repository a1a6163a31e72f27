package optimization

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// RiskPenaltyWeight is the soft-penalty coefficient on deviation from the
// risk target. A soft penalty is used instead of a hard volatility
// constraint because an equality constraint on risk is often infeasible
// under bounded weights.
const RiskPenaltyWeight = 100.0

// MeanVariance maximizes expected return while penalizing deviation of
// portfolio volatility from a risk target:
//
//	minimize  -mu'w + lambda * (sqrt(w'Sigma w) - riskTarget)^2
//	subject to sum(w) = 1 (penalty), bounds (projection)
type MeanVariance struct {
	RiskTarget float64
}

// NewMeanVariance creates a mean-variance optimizer for the given
// volatility target.
func NewMeanVariance(riskTarget float64) *MeanVariance {
	return &MeanVariance{RiskTarget: riskTarget}
}

// Name identifies the optimizer in ensemble shares and logs.
func (o *MeanVariance) Name() string { return "mean_variance" }

// Solve runs the bounded mean-variance program starting from equal
// weights, returning the equal-weight fallback on non-convergence.
func (o *MeanVariance) Solve(mu []float64, sigma *mat.SymDense, b Bounds) Result {
	n := len(mu)
	if n == 0 {
		return Result{Weights: nil, Converged: false}
	}
	if n == 1 {
		return Result{Weights: []float64{1.0}, Converged: true}
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			w := projectToBounds(x, b)

			portfolioReturn := 0.0
			for i := 0; i < n; i++ {
				portfolioReturn += mu[i] * w[i]
			}

			risk := math.Sqrt(math.Max(portfolioVariance(w, sigma), volatilityGuard))
			riskPenalty := RiskPenaltyWeight * (risk - o.RiskTarget) * (risk - o.RiskTarget)

			sum := 0.0
			for i := 0; i < n; i++ {
				sum += w[i]
			}

			return -portfolioReturn + riskPenalty + sumPenaltyWeight*(sum-1.0)*(sum-1.0)
		},
		Grad: func(grad, x []float64) {
			w := projectToBounds(x, b)

			sigmaW := make([]float64, n)
			sigmaDot(sigmaW, sigma, w)

			risk := math.Sqrt(math.Max(portfolioVariance(w, sigma), volatilityGuard))

			sum := 0.0
			for i := 0; i < n; i++ {
				sum += w[i]
			}

			for i := 0; i < n; i++ {
				grad[i] = -mu[i]
				grad[i] += 2 * RiskPenaltyWeight * (risk - o.RiskTarget) * sigmaW[i] / risk
				grad[i] += 2 * sumPenaltyWeight * (sum - 1.0)
			}
		},
	}

	x, ok := minimize(problem, equalWeights(n), &optimize.BFGS{}, &optimize.NelderMead{})
	if !ok {
		return fallbackResult(n)
	}

	return Result{Weights: clipAndNormalize(projectToBounds(x, b)), Converged: true}
}
