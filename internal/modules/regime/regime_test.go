package regime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Equal(t, RegimeBull, Parse("Bull"))
	assert.Equal(t, RegimeBear, Parse("Bear"))
	assert.Equal(t, RegimeVolatile, Parse("Volatile"))
	assert.Equal(t, RegimeStable, Parse("Stable"))
	assert.Equal(t, RegimeStable, Parse("sideways"))
	assert.Equal(t, RegimeStable, Parse(""))
}

func TestRiskMultiplier(t *testing.T) {
	assert.Equal(t, 1.1, RiskMultiplier(RegimeBull))
	assert.Equal(t, 0.6, RiskMultiplier(RegimeBear))
	assert.Equal(t, 0.7, RiskMultiplier(RegimeVolatile))
	assert.Equal(t, 1.0, RiskMultiplier(RegimeStable))
}

func TestAdjustedRiskTarget_NeutralConfidence(t *testing.T) {
	// Confidence 0.5 is neutral, so only the regime multiplier applies.
	target := AdjustedRiskTarget(0.15, Context{Regime: RegimeStable, Confidence: 0.5}, 1.0)
	assert.InDelta(t, 0.15, target, 1e-9)

	target = AdjustedRiskTarget(0.15, Context{Regime: RegimeBull, Confidence: 0.5}, 1.0)
	assert.InDelta(t, 0.15*1.1, target, 1e-9)
}

func TestAdjustedRiskTarget_ConfidenceScaling(t *testing.T) {
	low := AdjustedRiskTarget(0.15, Context{Regime: RegimeStable, Confidence: 0.0}, 1.0)
	high := AdjustedRiskTarget(0.15, Context{Regime: RegimeStable, Confidence: 1.0}, 1.0)

	assert.InDelta(t, 0.15*0.8, low, 1e-9)
	assert.InDelta(t, 0.15*1.2, high, 1e-9)
}

func TestAdjustedRiskTarget_Clamped(t *testing.T) {
	// Bear at full confidence would be 0.6*0.8 = 0.48x, clamped to 0.5x.
	target := AdjustedRiskTarget(0.15, Context{Regime: RegimeBear, Confidence: 0.0}, 1.0)
	assert.InDelta(t, 0.15*0.5, target, 1e-9)

	// An aggressive risk adjustment cannot exceed 1.5x base.
	target = AdjustedRiskTarget(0.15, Context{Regime: RegimeBull, Confidence: 1.0}, 3.0)
	assert.InDelta(t, 0.15*1.5, target, 1e-9)
}

func TestAdjustedRiskTarget_ZeroAdjustmentDefaultsToNeutral(t *testing.T) {
	withDefault := AdjustedRiskTarget(0.15, Context{Regime: RegimeStable, Confidence: 0.5}, 0)
	explicit := AdjustedRiskTarget(0.15, Context{Regime: RegimeStable, Confidence: 0.5}, 1.0)
	assert.Equal(t, explicit, withDefault)
}
