package constraints

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolioai/allocator/internal/config"
)

func newTestProjector() *Projector {
	return NewProjector(config.DefaultConstraints(), zerolog.Nop())
}

func sum(weights []float64) float64 {
	s := 0.0
	for _, w := range weights {
		s += w
	}
	return s
}

func turnover(a, b []float64) float64 {
	t := 0.0
	for i := range a {
		t += math.Abs(a[i] - b[i])
	}
	return t
}

func TestApply_SumsToOne(t *testing.T) {
	p := newTestProjector()
	symbols := []string{"A", "B", "C", "D"}
	current := []float64{0.25, 0.25, 0.25, 0.25}
	target := []float64{0.30, 0.30, 0.20, 0.20}

	result := p.Apply(symbols, target, current)

	require.Len(t, result, 4)
	assert.InDelta(t, 1.0, sum(result), 1e-6)
}

func TestApply_TurnoverCap(t *testing.T) {
	p := newTestProjector()
	symbols := []string{"A", "B", "C", "D"}
	current := []float64{0.25, 0.25, 0.25, 0.25}
	// Target far enough away that raw turnover well exceeds the cap.
	target := []float64{0.40, 0.40, 0.10, 0.10}

	result := p.Apply(symbols, target, current)

	assert.InDelta(t, 1.0, sum(result), 1e-6)
	assert.LessOrEqual(t, turnover(result, current), 0.2+1e-6)
}

func TestApply_SmallMoveNotScaled(t *testing.T) {
	p := newTestProjector()
	symbols := []string{"A", "B", "C"}
	current := []float64{0.34, 0.33, 0.33}
	target := []float64{0.36, 0.33, 0.31}

	result := p.Apply(symbols, target, current)

	assert.InDelta(t, 0.36, result[0], 1e-9)
	assert.InDelta(t, 0.31, result[2], 1e-9)
}

func TestApply_DiversificationFloor(t *testing.T) {
	p := newTestProjector()
	symbols := []string{"A", "B", "C", "D"}
	// Only one meaningful position before projection.
	target := []float64{0.995, 0.005, 0.0, 0.0}
	current := []float64{0.95, 0.05, 0.0, 0.0}

	result := p.Apply(symbols, target, current)

	meaningful := 0
	for _, w := range result {
		if w > 0.01 {
			meaningful++
		}
	}
	assert.GreaterOrEqual(t, meaningful, 3, "floor should create at least three meaningful positions")
	assert.InDelta(t, 1.0, sum(result), 1e-6)
}

func TestApply_Deterministic(t *testing.T) {
	p := newTestProjector()
	symbols := []string{"A", "B", "C", "D"}
	target := []float64{0.5, 0.3, 0.1, 0.1}
	current := []float64{0.25, 0.25, 0.25, 0.25}

	first := p.Apply(symbols, target, current)
	second := p.Apply(symbols, target, current)

	assert.Equal(t, first, second)
}

func TestApply_MaxWeightCapBeforeTurnover(t *testing.T) {
	p := newTestProjector()
	symbols := []string{"A", "B", "C"}
	current := []float64{0.40, 0.35, 0.25}
	target := []float64{0.70, 0.20, 0.10}

	result := p.Apply(symbols, target, current)

	assert.InDelta(t, 1.0, sum(result), 1e-6)
	assert.LessOrEqual(t, turnover(result, current), 0.2+1e-6)
}

func TestApply_Empty(t *testing.T) {
	p := newTestProjector()
	assert.Nil(t, p.Apply(nil, nil, nil))
}
