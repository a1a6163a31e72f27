package optimization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMeanVariance_Solve(t *testing.T) {
	mu := []float64{0.08, 0.03, 0.12, 0.05}
	sigma := testSigma([]float64{0.18, 0.05, 0.25, 0.20}, 0.3)
	b := Bounds{Min: 0.0, Max: 0.4}

	opt := NewMeanVariance(0.15)
	result := opt.Solve(mu, sigma, b)

	require.Len(t, result.Weights, 4)
	assertValidWeights(t, result.Weights, b)
	for _, w := range result.Weights {
		assert.LessOrEqual(t, w, b.Max+1e-9)
	}
}

func TestMeanVariance_SingleAsset(t *testing.T) {
	sigma := testSigma([]float64{0.18}, 0)
	result := NewMeanVariance(0.15).Solve([]float64{0.08}, sigma, Bounds{Min: 0, Max: 0.4})

	require.True(t, result.Converged)
	require.Len(t, result.Weights, 1)
	assert.Equal(t, 1.0, result.Weights[0])
}

func TestMeanVariance_EmptyInput(t *testing.T) {
	result := NewMeanVariance(0.15).Solve(nil, &mat.SymDense{}, Bounds{Min: 0, Max: 0.4})
	assert.False(t, result.Converged)
	assert.Empty(t, result.Weights)
}

func TestMeanVariance_PrefersHigherReturn(t *testing.T) {
	// Same vol everywhere so the return term drives the allocation.
	mu := []float64{0.12, 0.04, 0.04, 0.04}
	sigma := testSigma([]float64{0.18, 0.18, 0.18, 0.18}, 0.5)
	b := Bounds{Min: 0.0, Max: 0.4}

	result := NewMeanVariance(0.15).Solve(mu, sigma, b)

	assertValidWeights(t, result.Weights, b)
	for i := 1; i < 4; i++ {
		assert.GreaterOrEqual(t, result.Weights[0], result.Weights[i]-1e-6,
			"highest-return asset should not be underweighted")
	}
}
