// Package regime provides market-regime context for the allocation engine:
// regime-aware risk targets and confidence-scaled allocation tilts.
//
// The regime label and its confidence come from an external classifier and
// are consumed here as read-only inputs.
package regime

import "math"

// Regime represents the categorical market-condition label
type Regime string

const (
	// RegimeBull - sustained upward trend, risk-on
	RegimeBull Regime = "Bull"
	// RegimeBear - sustained downward trend, capital preservation
	RegimeBear Regime = "Bear"
	// RegimeVolatile - elevated volatility without clear direction
	RegimeVolatile Regime = "Volatile"
	// RegimeStable - normal conditions
	RegimeStable Regime = "Stable"
)

// Context pairs a regime label with the classifier's confidence in it.
type Context struct {
	Regime     Regime
	Confidence float64 // [0,1]
}

// Parse maps a regime string to a Regime, defaulting to Stable for
// anything unrecognised.
func Parse(s string) Regime {
	switch Regime(s) {
	case RegimeBull, RegimeBear, RegimeVolatile, RegimeStable:
		return Regime(s)
	default:
		return RegimeStable
	}
}

// riskMultipliers holds the per-regime risk tolerance adjustments.
var riskMultipliers = map[Regime]float64{
	RegimeBull:     1.1, // Increase risk in bull markets
	RegimeBear:     0.6, // Decrease risk in bear markets
	RegimeVolatile: 0.7, // Conservative in volatile markets
	RegimeStable:   1.0, // Normal risk in stable markets
}

// RiskMultiplier returns the risk tolerance multiplier for a regime.
func RiskMultiplier(r Regime) float64 {
	if m, ok := riskMultipliers[r]; ok {
		return m
	}
	return 1.0
}

// AdjustedRiskTarget calculates the volatility target for the optimizer,
// scaled by regime, classifier confidence and the caller's risk adjustment.
// The result is clamped to [0.5, 1.5] x base so a misbehaving input cannot
// push the optimizer to an extreme target.
func AdjustedRiskTarget(base float64, ctx Context, riskAdjustment float64) float64 {
	if riskAdjustment <= 0 {
		riskAdjustment = 1.0
	}

	confidence := clamp01(ctx.Confidence)

	// Confidence 0.5 is neutral; full confidence moves the target by 20%.
	confidenceAdjustment := 1.0 + (confidence-0.5)*0.4

	adjusted := base * RiskMultiplier(ctx.Regime) * confidenceAdjustment * riskAdjustment

	minRisk := base * 0.5
	maxRisk := base * 1.5
	return math.Max(minRisk, math.Min(maxRisk, adjusted))
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
