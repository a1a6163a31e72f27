// Package metrics computes portfolio-level performance and risk figures
// for an allocation: return, volatility, Sharpe, VaR, diversification and
// concentration measures, and the rebalancing drift check.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/portfolioai/allocator/internal/config"
)

// RiskFreeRate is the annual risk-free rate used in Sharpe ratios.
const RiskFreeRate = 0.02

// Portfolio holds the headline return and risk figures for an allocation.
type Portfolio struct {
	ExpectedReturn float64 `json:"expected_return"`
	ExpectedRisk   float64 `json:"expected_risk"`
	SharpeRatio    float64 `json:"sharpe_ratio"`
}

// Risk holds the downside and concentration figures for an allocation.
type Risk struct {
	ValueAtRisk95        float64            `json:"var_95"`
	ComponentVaR         map[string]float64 `json:"component_var"`
	DiversificationRatio float64            `json:"diversification_ratio"`
	ConcentrationHHI     float64            `json:"concentration_hhi"`
	EffectiveAssets      float64            `json:"effective_assets"`
}

// Rebalancing reports whether the drift between two allocations warrants
// trading.
type Rebalancing struct {
	Needed          bool    `json:"rebalancing_needed"`
	TotalDrift      float64 `json:"total_drift"`
	DriftPercentage float64 `json:"drift_percentage"`
	DriftThreshold  float64 `json:"drift_threshold"`
}

// SharpeImprovement compares the Sharpe ratio before and after
// reallocation.
type SharpeImprovement struct {
	Current  float64 `json:"current"`
	New      float64 `json:"new"`
	Absolute float64 `json:"absolute"`
	Relative float64 `json:"relative"`
}

// Engine computes allocation metrics using the configured risk
// parameters. It is immutable after construction and safe for concurrent
// use.
type Engine struct {
	risk   config.RiskParams
	normal distuv.Normal
}

// NewEngine creates a metrics engine for the given risk parameters.
func NewEngine(risk config.RiskParams) *Engine {
	return &Engine{
		risk:   risk,
		normal: distuv.Normal{Mu: 0, Sigma: 1},
	}
}

// PortfolioMetrics computes expected return w'mu, volatility
// sqrt(w'Sigma w) and the Sharpe ratio. Zero volatility yields a zero
// Sharpe rather than a division blowup.
func (e *Engine) PortfolioMetrics(weights, mu []float64, sigma *mat.SymDense) Portfolio {
	expectedReturn := dot(weights, mu)
	risk := portfolioRisk(weights, sigma)

	sharpe := 0.0
	if risk > 0 {
		sharpe = (expectedReturn - RiskFreeRate) / risk
	}

	return Portfolio{
		ExpectedReturn: expectedReturn,
		ExpectedRisk:   risk,
		SharpeRatio:    sharpe,
	}
}

// RiskMetrics computes the parametric value-at-risk at the configured
// confidence level, per-asset VaR contributions, the diversification
// ratio and concentration measures. VaR is reported as a negative
// number, the tail return at the confidence level.
func (e *Engine) RiskMetrics(symbols []string, weights []float64, sigma *mat.SymDense) Risk {
	risk := portfolioRisk(weights, sigma)
	zScore := e.normal.Quantile(e.risk.VaRConfidence)
	valueAtRisk := zScore * risk

	componentVaR := make(map[string]float64, len(symbols))
	if risk > 0 {
		sigmaW := make([]float64, len(weights))
		for i := range weights {
			s := 0.0
			for j := range weights {
				s += sigma.At(i, j) * weights[j]
			}
			sigmaW[i] = s
		}
		// Marginal contribution: w_i (Sigma w)_i / vol, scaled by the
		// same tail z-score. Contributions sum to the total VaR.
		for i, symbol := range symbols {
			componentVaR[symbol] = zScore * weights[i] * sigmaW[i] / risk
		}
	} else {
		for _, symbol := range symbols {
			componentVaR[symbol] = 0
		}
	}

	weightedVol := 0.0
	for i := range weights {
		weightedVol += weights[i] * math.Sqrt(sigma.At(i, i))
	}
	diversification := 0.0
	if risk > 0 {
		diversification = weightedVol / risk
	}

	hhi := 0.0
	for _, w := range weights {
		hhi += w * w
	}
	effective := 0.0
	if hhi > 0 {
		effective = 1.0 / hhi
	}

	return Risk{
		ValueAtRisk95:        valueAtRisk,
		ComponentVaR:         componentVaR,
		DiversificationRatio: diversification,
		ConcentrationHHI:     hhi,
		EffectiveAssets:      effective,
	}
}

// RebalancingCheck sums the absolute drift between current and target
// weights and compares it against the configured drift threshold.
func (e *Engine) RebalancingCheck(current, target []float64) Rebalancing {
	drift := 0.0
	for i := range target {
		cur := 0.0
		if i < len(current) {
			cur = current[i]
		}
		drift += math.Abs(target[i] - cur)
	}

	return Rebalancing{
		Needed:          drift > e.risk.RebalancingThreshold,
		TotalDrift:      drift,
		DriftPercentage: drift * 100,
		DriftThreshold:  e.risk.RebalancingThreshold,
	}
}

// SharpeComparison reports the Sharpe improvement from moving between
// two allocations over the same estimates.
func (e *Engine) SharpeComparison(current, target, mu []float64, sigma *mat.SymDense) SharpeImprovement {
	currentSharpe := e.PortfolioMetrics(current, mu, sigma).SharpeRatio
	newSharpe := e.PortfolioMetrics(target, mu, sigma).SharpeRatio

	relative := 0.0
	if math.Abs(currentSharpe) > 1e-10 {
		relative = (newSharpe - currentSharpe) / math.Abs(currentSharpe)
	}

	return SharpeImprovement{
		Current:  currentSharpe,
		New:      newSharpe,
		Absolute: newSharpe - currentSharpe,
		Relative: relative,
	}
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func portfolioRisk(weights []float64, sigma *mat.SymDense) float64 {
	variance := 0.0
	for i := range weights {
		for j := range weights {
			variance += weights[i] * weights[j] * sigma.At(i, j)
		}
	}
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}
