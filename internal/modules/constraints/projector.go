// Package constraints applies portfolio-level limits to a target
// allocation: weight bounds, a diversification floor, and a turnover cap
// against the current holdings.
package constraints

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/portfolioai/allocator/internal/config"
)

// DiversificationFloorWeight is the minimum weight granted to each of the
// top holdings when the allocation is too concentrated.
const DiversificationFloorWeight = 0.05

// meaningfulWeight is the threshold above which a position counts toward
// diversification.
const meaningfulWeight = 0.01

// Projector applies the configured constraint set to target weights.
type Projector struct {
	constraints config.ConstraintSet
	log         zerolog.Logger
}

// NewProjector creates a constraint projector.
func NewProjector(constraints config.ConstraintSet, log zerolog.Logger) *Projector {
	return &Projector{
		constraints: constraints,
		log:         log.With().Str("component", "constraints").Logger(),
	}
}

// Apply enforces the constraint set on target, using current for the
// turnover cap. Order matters: bounds, then the diversification floor,
// then a renormalization so turnover is measured on a fully invested
// vector, then the turnover scaling. Scaled deltas sum to zero, so the
// result stays fully invested.
func (p *Projector) Apply(symbols []string, target, current []float64) []float64 {
	n := len(target)
	if n == 0 {
		return nil
	}

	weights := make([]float64, n)
	copy(weights, target)

	for i := range weights {
		if weights[i] > p.constraints.MaxWeight {
			weights[i] = p.constraints.MaxWeight
		}
		if weights[i] < p.constraints.MinWeight {
			weights[i] = 0
		}
	}

	p.applyDiversificationFloor(symbols, weights)
	normalize(weights)
	p.applyTurnoverCap(weights, current)
	normalize(weights)

	return weights
}

// applyDiversificationFloor raises the largest holdings to the floor
// weight when fewer than the configured minimum carry a meaningful
// position. Ties break on symbol so the result is deterministic.
func (p *Projector) applyDiversificationFloor(symbols []string, weights []float64) {
	meaningful := 0
	for _, w := range weights {
		if w > meaningfulWeight {
			meaningful++
		}
	}
	if meaningful >= p.constraints.MinDiversification {
		return
	}

	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if weights[order[a]] != weights[order[b]] {
			return weights[order[a]] > weights[order[b]]
		}
		return symbols[order[a]] < symbols[order[b]]
	})

	top := p.constraints.MinDiversification
	if top > len(weights) {
		top = len(weights)
	}
	for _, idx := range order[:top] {
		if weights[idx] < DiversificationFloorWeight {
			weights[idx] = DiversificationFloorWeight
		}
	}

	p.log.Debug().
		Int("meaningful_positions", meaningful).
		Int("floored_positions", top).
		Msg("Applied diversification floor")
}

// applyTurnoverCap scales every delta from current uniformly so total
// turnover stays within the configured cap.
func (p *Projector) applyTurnoverCap(weights, current []float64) {
	if len(current) != len(weights) {
		return
	}

	turnover := 0.0
	for i := range weights {
		turnover += math.Abs(weights[i] - current[i])
	}
	if turnover <= p.constraints.MaxTurnover {
		return
	}

	scale := p.constraints.MaxTurnover / turnover
	for i := range weights {
		weights[i] = current[i] + (weights[i]-current[i])*scale
	}

	p.log.Debug().
		Float64("raw_turnover", turnover).
		Float64("scale", scale).
		Msg("Scaled allocation changes to turnover cap")
}

func normalize(weights []float64) {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return
	}
	for i := range weights {
		weights[i] /= sum
	}
}
