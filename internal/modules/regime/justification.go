package regime

import (
	"fmt"
	"math"
	"sort"
)

// MajorChangeThreshold is the absolute weight change above which a move is
// itemized in the justification.
const MajorChangeThreshold = 0.05

// Justification explains the regime-driven allocation changes.
type Justification struct {
	Regime             Regime   `json:"regime"`
	Confidence         float64  `json:"confidence"`
	Reasoning          string   `json:"reasoning"`
	KeyChanges         []string `json:"key_changes"`
	RiskConsiderations []string `json:"risk_considerations"`
}

// Justify builds a human-readable rationale for the move from the current
// to the new allocation under the given regime context.
func Justify(ctx Context, currentWeights, newWeights map[string]float64) Justification {
	j := Justification{
		Regime:     ctx.Regime,
		Confidence: ctx.Confidence,
		KeyChanges: []string{},
	}

	switch ctx.Regime {
	case RegimeBull:
		j.Reasoning = fmt.Sprintf("Bull market regime detected with %.1f%% confidence. Increasing risk exposure and growth allocations to capitalize on positive momentum.", ctx.Confidence*100)
		j.RiskConsiderations = []string{
			"Monitor for signs of market exhaustion",
			"Prepare for potential volatility spikes",
			"Consider profit-taking thresholds",
		}
	case RegimeBear:
		j.Reasoning = fmt.Sprintf("Bear market regime detected with %.1f%% confidence. Reducing risk exposure and increasing defensive allocations to preserve capital.", ctx.Confidence*100)
		j.RiskConsiderations = []string{
			"Focus on capital preservation",
			"Monitor for oversold conditions",
			"Prepare for potential bounce opportunities",
		}
	case RegimeVolatile:
		j.Reasoning = fmt.Sprintf("Volatile market regime detected with %.1f%% confidence. Reducing concentration and adding hedges to manage uncertainty.", ctx.Confidence*100)
		j.RiskConsiderations = []string{
			"Expect continued high volatility",
			"Reduce position sizes",
			"Consider volatility hedges",
		}
	default:
		j.Reasoning = fmt.Sprintf("Stable market regime detected with %.1f%% confidence. Maintaining balanced allocation with focus on optimization.", ctx.Confidence*100)
		j.RiskConsiderations = []string{
			"Monitor for regime changes",
			"Focus on steady returns",
			"Maintain diversification",
		}
	}

	// Itemize major moves, sorted by symbol for deterministic output.
	symbols := make([]string, 0, len(currentWeights)+len(newWeights))
	seen := make(map[string]bool)
	for s := range currentWeights {
		if !seen[s] {
			symbols = append(symbols, s)
			seen[s] = true
		}
	}
	for s := range newWeights {
		if !seen[s] {
			symbols = append(symbols, s)
			seen[s] = true
		}
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		change := newWeights[symbol] - currentWeights[symbol]
		if math.Abs(change) <= MajorChangeThreshold {
			continue
		}
		action := "BUY"
		if change < 0 {
			action = "SELL"
		}
		j.KeyChanges = append(j.KeyChanges,
			fmt.Sprintf("%s %s: %.1f%% allocation change", action, symbol, math.Abs(change)*100))
	}

	return j
}
