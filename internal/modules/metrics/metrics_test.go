package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/portfolioai/allocator/internal/config"
)

func newTestEngine() *Engine {
	return NewEngine(config.DefaultRiskParams())
}

func twoAssetSigma() *mat.SymDense {
	// 18% and 5% vol with a -0.2 correlation.
	return mat.NewSymDense(2, []float64{
		0.0324, -0.0018,
		-0.0018, 0.0025,
	})
}

func TestPortfolioMetrics(t *testing.T) {
	e := newTestEngine()
	weights := []float64{0.6, 0.4}
	mu := []float64{0.08, 0.03}

	p := e.PortfolioMetrics(weights, mu, twoAssetSigma())

	assert.InDelta(t, 0.6*0.08+0.4*0.03, p.ExpectedReturn, 1e-9)
	assert.Greater(t, p.ExpectedRisk, 0.0)
	assert.InDelta(t, (p.ExpectedReturn-RiskFreeRate)/p.ExpectedRisk, p.SharpeRatio, 1e-9)
}

func TestPortfolioMetrics_ZeroRisk(t *testing.T) {
	e := newTestEngine()
	zero := mat.NewSymDense(2, nil)

	p := e.PortfolioMetrics([]float64{0.5, 0.5}, []float64{0.08, 0.03}, zero)

	assert.Equal(t, 0.0, p.ExpectedRisk)
	assert.Equal(t, 0.0, p.SharpeRatio)
}

func TestRiskMetrics(t *testing.T) {
	e := newTestEngine()
	symbols := []string{"SPY", "TLT"}
	weights := []float64{0.6, 0.4}

	r := e.RiskMetrics(symbols, weights, twoAssetSigma())

	assert.Less(t, r.ValueAtRisk95, 0.0, "95% VaR should be a negative tail return")

	// Component VaR contributions sum to the total.
	total := 0.0
	for _, v := range r.ComponentVaR {
		total += v
	}
	assert.InDelta(t, r.ValueAtRisk95, total, 1e-9)

	// Diversification ratio exceeds 1 for imperfectly correlated assets.
	assert.Greater(t, r.DiversificationRatio, 1.0)

	assert.InDelta(t, 0.36+0.16, r.ConcentrationHHI, 1e-9)
	assert.InDelta(t, 1.0/0.52, r.EffectiveAssets, 1e-9)
}

func TestRiskMetrics_EqualWeightsMaximizeEffectiveAssets(t *testing.T) {
	e := newTestEngine()
	sigma := mat.NewSymDense(4, nil)
	for i := 0; i < 4; i++ {
		sigma.SetSym(i, i, 0.0324)
	}
	symbols := []string{"A", "B", "C", "D"}

	equal := e.RiskMetrics(symbols, []float64{0.25, 0.25, 0.25, 0.25}, sigma)
	skewed := e.RiskMetrics(symbols, []float64{0.7, 0.1, 0.1, 0.1}, sigma)

	assert.InDelta(t, 4.0, equal.EffectiveAssets, 1e-9)
	assert.Less(t, skewed.EffectiveAssets, equal.EffectiveAssets)
}

func TestRebalancingCheck(t *testing.T) {
	e := newTestEngine()

	below := e.RebalancingCheck([]float64{0.50, 0.50}, []float64{0.52, 0.48})
	assert.False(t, below.Needed)
	assert.InDelta(t, 0.04, below.TotalDrift, 1e-9)

	above := e.RebalancingCheck([]float64{0.50, 0.50}, []float64{0.60, 0.40})
	assert.True(t, above.Needed)
	assert.InDelta(t, 0.20, above.TotalDrift, 1e-9)
	assert.InDelta(t, 20.0, above.DriftPercentage, 1e-9)
	assert.InDelta(t, 0.05, above.DriftThreshold, 1e-9)
}

func TestRebalancingCheck_ConfiguredThreshold(t *testing.T) {
	risk := config.DefaultRiskParams()
	risk.RebalancingThreshold = 0.5
	e := NewEngine(risk)

	r := e.RebalancingCheck([]float64{0.50, 0.50}, []float64{0.70, 0.30})

	assert.False(t, r.Needed, "raised threshold should suppress rebalancing")
	assert.InDelta(t, 0.4, r.TotalDrift, 1e-9)
	assert.InDelta(t, 0.5, r.DriftThreshold, 1e-9)
}

func TestRiskMetrics_ConfiguredVaRConfidence(t *testing.T) {
	tighter := config.DefaultRiskParams()
	tighter.VaRConfidence = 0.01

	weights := []float64{0.6, 0.4}
	defaultVaR := newTestEngine().RiskMetrics([]string{"SPY", "TLT"}, weights, twoAssetSigma())
	tightVaR := NewEngine(tighter).RiskMetrics([]string{"SPY", "TLT"}, weights, twoAssetSigma())

	assert.Less(t, tightVaR.ValueAtRisk95, defaultVaR.ValueAtRisk95,
		"a deeper tail should report a larger loss")
}

func TestRebalancingCheck_MissingCurrentTreatedAsZero(t *testing.T) {
	e := newTestEngine()
	r := e.RebalancingCheck([]float64{1.0}, []float64{0.9, 0.1})
	assert.InDelta(t, 0.2, r.TotalDrift, 1e-9)
	assert.True(t, r.Needed)
}

func TestSharpeComparison(t *testing.T) {
	e := newTestEngine()
	mu := []float64{0.08, 0.03}
	sigma := twoAssetSigma()

	current := []float64{0.5, 0.5}
	// All-in on the higher-return asset.
	target := []float64{1.0, 0.0}

	imp := e.SharpeComparison(current, target, mu, sigma)

	require.NotZero(t, imp.Current)
	assert.InDelta(t, imp.New-imp.Current, imp.Absolute, 1e-12)
	if imp.Current != 0 {
		assert.InDelta(t, imp.Absolute/imp.Current, imp.Relative, 1e-9)
	}
}
