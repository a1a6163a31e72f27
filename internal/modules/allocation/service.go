// Package allocation orchestrates the full optimization pipeline: return
// and covariance estimation, the concurrent optimizer ensemble, regime
// tilts, constraint projection and the metrics on the result.
package allocation

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/portfolioai/allocator/internal/config"
	"github.com/portfolioai/allocator/internal/modules/constraints"
	"github.com/portfolioai/allocator/internal/modules/estimation"
	"github.com/portfolioai/allocator/internal/modules/metrics"
	"github.com/portfolioai/allocator/internal/modules/optimization"
	"github.com/portfolioai/allocator/internal/modules/regime"
)

// Service runs allocation requests end to end. It never returns an
// error: every failure path produces a fallback response that echoes the
// caller's current weights.
type Service struct {
	cfg       *config.Config
	estimator *estimation.Estimator
	suite     *optimization.Suite
	adjuster  *regime.Adjuster
	projector *constraints.Projector
	metrics   *metrics.Engine
	log       zerolog.Logger
}

// NewService wires the allocation pipeline from configuration.
func NewService(cfg *config.Config, log zerolog.Logger) *Service {
	return &Service{
		cfg:       cfg,
		estimator: estimation.NewEstimator(log),
		suite:     optimization.NewSuite(log),
		adjuster:  regime.NewAdjuster(log),
		projector: constraints.NewProjector(cfg.Constraints, log),
		metrics:   metrics.NewEngine(cfg.Risk),
		log:       log.With().Str("component", "allocation").Logger(),
	}
}

// Allocate runs the pipeline for one request. A panic anywhere in the
// pipeline is recovered into the fallback response.
func (s *Service) Allocate(req Request) (resp Response) {
	requestID := uuid.New().String()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Str("request_id", requestID).
				Interface("panic", r).
				Msg("Allocation pipeline panicked, returning fallback")
			resp = s.fallbackResponse(requestID, req, ErrOptimizationPanic.Error())
		}
	}()

	if len(req.CurrentWeights) == 0 {
		return s.fallbackResponse(requestID, req, ErrNoCurrentWeights.Error())
	}

	ctx := regime.Context{
		Regime:     regime.Parse(req.MarketRegime),
		Confidence: req.RegimeConfidence,
	}

	symbols := sortedSymbols(req.CurrentWeights)
	current := make([]float64, len(symbols))
	for i, symbol := range symbols {
		current[i] = req.CurrentWeights[symbol]
	}

	mu := toSlice(symbols, s.estimator.ExpectedReturns(symbols, req.MLPredictions))
	sigma := s.estimator.Covariance(symbols)

	riskTarget := regime.AdjustedRiskTarget(s.cfg.Risk.TargetVolatility, ctx, req.RiskAdjustment)

	bounds := optimization.Bounds{
		Min: s.cfg.Constraints.MinWeight,
		Max: s.cfg.Constraints.MaxWeight,
	}
	suiteResult := s.suite.Run(mu, sigma, current, bounds, riskTarget)

	tilted := s.adjuster.Apply(toMap(symbols, suiteResult.Weights), ctx)
	target := toSlice(symbols, tilted)

	final := s.projector.Apply(symbols, target, current)
	finalWeights := toMap(symbols, final)

	portfolio := s.metrics.PortfolioMetrics(final, mu, sigma)
	risk := s.metrics.RiskMetrics(symbols, final, sigma)
	rebalancing := s.metrics.RebalancingCheck(current, final)
	sharpe := s.metrics.SharpeComparison(current, final, mu, sigma)
	justification := regime.Justify(ctx, req.CurrentWeights, finalWeights)

	s.log.Info().
		Str("request_id", requestID).
		Str("regime", string(ctx.Regime)).
		Int("num_symbols", len(symbols)).
		Float64("risk_target", riskTarget).
		Float64("expected_return", portfolio.ExpectedReturn).
		Float64("expected_risk", portfolio.ExpectedRisk).
		Bool("rebalancing_needed", rebalancing.Needed).
		Msg("Allocation optimized")

	return Response{
		Success:             true,
		RequestID:           requestID,
		OptimalWeights:      finalWeights,
		ExpectedReturn:      portfolio.ExpectedReturn,
		ExpectedRisk:        portfolio.ExpectedRisk,
		SharpeRatio:         portfolio.SharpeRatio,
		SharpeImprovement:   &sharpe,
		OptimizationMethod:  suiteResult.Method,
		AllocationChanges:   buildChanges(symbols, current, final),
		RiskMetrics:         &risk,
		Rebalancing:         &rebalancing,
		RegimeJustification: &justification,
		RegimeAdjustments: &RegimeAdjustments{
			Regime:             string(ctx.Regime),
			Confidence:         ctx.Confidence,
			RiskMultiplier:     regime.RiskMultiplier(ctx.Regime),
			AdjustedRiskTarget: riskTarget,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// fallbackResponse echoes the current allocation with the failure reason.
func (s *Service) fallbackResponse(requestID string, req Request, reason string) Response {
	weights := make(map[string]float64, len(req.CurrentWeights))
	for symbol, w := range req.CurrentWeights {
		weights[symbol] = w
	}

	return Response{
		Success:            false,
		RequestID:          requestID,
		OptimalWeights:     weights,
		OptimizationMethod: "fallback",
		AllocationChanges:  []Change{},
		Error:              reason,
		FallbackMode:       true,
		Timestamp:          time.Now().UTC().Format(time.RFC3339),
	}
}

// buildChanges itemizes the trade per symbol with the hold deadband.
func buildChanges(symbols []string, current, final []float64) []Change {
	changes := make([]Change, 0, len(symbols))
	for i, symbol := range symbols {
		delta := final[i] - current[i]
		action := "HOLD"
		if delta > TradeDeadband {
			action = "BUY"
		} else if delta < -TradeDeadband {
			action = "SELL"
		}
		changes = append(changes, Change{
			Symbol:        symbol,
			Action:        action,
			CurrentWeight: current[i],
			NewWeight:     final[i],
			Change:        delta,
		})
	}
	return changes
}

func sortedSymbols(weights map[string]float64) []string {
	symbols := make([]string, 0, len(weights))
	for symbol := range weights {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

func toMap(symbols []string, weights []float64) map[string]float64 {
	m := make(map[string]float64, len(symbols))
	for i, symbol := range symbols {
		m[symbol] = weights[i]
	}
	return m
}

func toSlice(symbols []string, weights map[string]float64) []float64 {
	out := make([]float64, len(symbols))
	for i, symbol := range symbols {
		out[i] = weights[symbol]
	}
	return out
}
