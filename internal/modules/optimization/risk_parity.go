package optimization

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// RiskParityMinWeight keeps every asset strictly invested so each can
// carry a risk contribution; a zero weight has no contribution to
// equalize.
const RiskParityMinWeight = 0.01

// RiskParity solves for equal risk contribution: each asset's
// contribution w_i * (Sigma w)_i / vol is pushed toward vol/N by
// minimizing the squared deviations.
type RiskParity struct{}

// NewRiskParity creates a risk parity optimizer.
func NewRiskParity() *RiskParity {
	return &RiskParity{}
}

// Name identifies the optimizer in ensemble shares and logs.
func (o *RiskParity) Name() string { return "risk_parity" }

// Solve runs the bounded equal-risk-contribution program starting from
// equal weights, returning the equal-weight fallback on non-convergence.
// The objective is not smooth enough near degenerate covariances for
// quasi-Newton methods, so Nelder-Mead does the work.
func (o *RiskParity) Solve(mu []float64, sigma *mat.SymDense, b Bounds) Result {
	n := sigma.SymmetricDim()
	if n == 0 {
		return Result{Weights: nil, Converged: false}
	}
	if n == 1 {
		return Result{Weights: []float64{1.0}, Converged: true}
	}

	bounds := Bounds{Min: math.Max(b.Min, RiskParityMinWeight), Max: b.Max}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			w := projectToBounds(x, bounds)

			sigmaW := make([]float64, n)
			sigmaDot(sigmaW, sigma, w)

			vol := math.Sqrt(math.Max(portfolioVariance(w, sigma), volatilityGuard))
			targetContribution := vol / float64(n)

			obj := 0.0
			for i := 0; i < n; i++ {
				contribution := w[i] * sigmaW[i] / vol
				diff := contribution - targetContribution
				obj += diff * diff
			}

			sum := 0.0
			for i := 0; i < n; i++ {
				sum += w[i]
			}

			return obj + sumPenaltyWeight*(sum-1.0)*(sum-1.0)
		},
	}

	x, ok := minimize(problem, equalWeights(n), &optimize.NelderMead{})
	if !ok {
		return fallbackResult(n)
	}

	return Result{Weights: clipAndNormalize(projectToBounds(x, bounds)), Converged: true}
}
