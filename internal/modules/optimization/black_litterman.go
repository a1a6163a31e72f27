package optimization

import (
	"gonum.org/v1/gonum/mat"
)

// Black-Litterman parameters.
const (
	// RiskAversion is the market risk-aversion coefficient delta used to
	// back out implied returns from current holdings.
	RiskAversion = 3.0
	// ViewScaling is tau, the uncertainty scaling on the prior.
	ViewScaling = 0.025
)

// BlackLitterman blends market-implied returns with the model's view via
// precision weighting, then solves w proportional to Sigma^-1 * mu_blended.
// Simplified formulation: the view uncertainty is Omega = tau * Sigma,
// views cover every asset, and negative weights are clipped after the
// fact rather than constrained away, so the pre-normalization sum can
// drift slightly from 1 before the final rescale.
type BlackLitterman struct {
	CurrentWeights []float64
}

// NewBlackLitterman creates a Black-Litterman optimizer anchored on the
// caller's current holdings.
func NewBlackLitterman(currentWeights []float64) *BlackLitterman {
	return &BlackLitterman{CurrentWeights: currentWeights}
}

// Name identifies the optimizer in ensemble shares and logs.
func (o *BlackLitterman) Name() string { return "black_litterman" }

// Solve computes the closed-form blended allocation. Linear-algebra
// failures (singular covariance) fall back to equal weights.
func (o *BlackLitterman) Solve(mu []float64, sigma *mat.SymDense, b Bounds) Result {
	n := len(mu)
	if n == 0 {
		return Result{Weights: nil, Converged: false}
	}
	if n == 1 {
		return Result{Weights: []float64{1.0}, Converged: true}
	}
	if len(o.CurrentWeights) != n {
		return fallbackResult(n)
	}

	// Market-implied returns: pi = delta * Sigma * w_current.
	pi := make([]float64, n)
	sigmaDot(pi, sigma, o.CurrentWeights)
	for i := range pi {
		pi[i] *= RiskAversion
	}

	// Precision-weighted blend of prior pi and view mu. The prior
	// precision is (tau*Sigma)^-1 and the view precision Omega^-1 with
	// Omega = tau*Sigma, so:
	//   mu_bl = (P_prior + P_view)^-1 (P_prior*pi + P_view*mu)
	tauSigma := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			tauSigma.Set(i, j, ViewScaling*sigma.At(i, j))
		}
	}

	var precision mat.Dense
	if err := precision.Inverse(tauSigma); err != nil {
		return fallbackResult(n)
	}

	// rhs = precision*pi + precision*mu
	rhs := mat.NewVecDense(n, nil)
	var priorTerm, viewTerm mat.VecDense
	priorTerm.MulVec(&precision, mat.NewVecDense(n, pi))
	viewTerm.MulVec(&precision, mat.NewVecDense(n, mu))
	rhs.AddVec(&priorTerm, &viewTerm)

	// combined = precision + precision
	var combined mat.Dense
	combined.Add(&precision, &precision)

	var blended mat.VecDense
	if err := blended.SolveVec(&combined, rhs); err != nil {
		return fallbackResult(n)
	}

	// Allocate: w proportional to (delta*Sigma)^-1 * mu_blended.
	deltaSigma := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			deltaSigma.Set(i, j, RiskAversion*sigma.At(i, j))
		}
	}

	var raw mat.VecDense
	if err := raw.SolveVec(deltaSigma, &blended); err != nil {
		return fallbackResult(n)
	}

	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		weights[i] = raw.AtVec(i)
	}

	// No shorting: clip negatives, renormalize.
	return Result{Weights: clipAndNormalize(weights), Converged: true}
}
