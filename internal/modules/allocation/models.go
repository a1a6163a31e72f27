package allocation

import (
	"github.com/portfolioai/allocator/internal/modules/estimation"
	"github.com/portfolioai/allocator/internal/modules/metrics"
	"github.com/portfolioai/allocator/internal/modules/regime"
)

// TradeDeadband is the absolute weight change below which a position is
// reported as HOLD rather than BUY or SELL.
const TradeDeadband = 0.01

// Request is an allocation optimization request.
type Request struct {
	CurrentWeights   map[string]float64     `json:"current_weights"`
	MarketRegime     string                 `json:"market_regime"`
	RegimeConfidence float64                `json:"regime_confidence"`
	MLPredictions    estimation.Predictions `json:"ml_predictions"`
	RiskAdjustment   float64                `json:"risk_adjustment"`
}

// Change describes the recommended trade for one position.
type Change struct {
	Symbol        string  `json:"symbol"`
	Action        string  `json:"action"`
	CurrentWeight float64 `json:"current_weight"`
	NewWeight     float64 `json:"new_weight"`
	Change        float64 `json:"change"`
}

// RegimeAdjustments echoes the regime-derived parameters back to the
// caller so the applied risk scaling is auditable.
type RegimeAdjustments struct {
	Regime             string  `json:"regime"`
	Confidence         float64 `json:"confidence"`
	RiskMultiplier     float64 `json:"risk_multiplier"`
	AdjustedRiskTarget float64 `json:"adjusted_risk_target"`
}

// Response is the full allocation result. On failure Success is false,
// Error carries the reason and OptimalWeights echoes the current
// allocation so the caller always has an actionable vector.
type Response struct {
	Success             bool                       `json:"success"`
	RequestID           string                     `json:"request_id"`
	OptimalWeights      map[string]float64         `json:"optimal_weights"`
	ExpectedReturn      float64                    `json:"expected_return"`
	ExpectedRisk        float64                    `json:"expected_risk"`
	SharpeRatio         float64                    `json:"sharpe_ratio"`
	SharpeImprovement   *metrics.SharpeImprovement `json:"sharpe_improvement,omitempty"`
	OptimizationMethod  string                     `json:"optimization_method"`
	AllocationChanges   []Change                   `json:"allocation_changes"`
	RiskMetrics         *metrics.Risk              `json:"risk_metrics,omitempty"`
	Rebalancing         *metrics.Rebalancing       `json:"rebalancing_needed,omitempty"`
	RegimeJustification *regime.Justification      `json:"regime_justification,omitempty"`
	RegimeAdjustments   *RegimeAdjustments         `json:"regime_adjustments,omitempty"`
	Error               string                     `json:"error,omitempty"`
	FallbackMode        bool                       `json:"fallback_mode"`
	Timestamp           string                     `json:"timestamp"`
}
