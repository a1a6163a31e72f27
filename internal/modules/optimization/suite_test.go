package optimization

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuite_Run(t *testing.T) {
	mu := []float64{0.08, 0.03, 0.12, 0.05}
	sigma := testSigma([]float64{0.18, 0.05, 0.25, 0.20}, 0.3)
	current := []float64{0.25, 0.25, 0.25, 0.25}
	b := Bounds{Min: 0.0, Max: 0.4}

	suite := NewSuite(zerolog.Nop())
	result := suite.Run(mu, sigma, current, b, 0.15)

	assert.Equal(t, EnsembleMethod, result.Method)
	require.Len(t, result.Weights, 4)
	assertValidWeights(t, result.Weights, b)

	require.Len(t, result.Results, 4)
	for _, name := range []string{"mean_variance", "risk_parity", "black_litterman", "minimum_variance"} {
		sub, ok := result.Results[name]
		require.True(t, ok, "missing result for %s", name)
		assert.Len(t, sub.Weights, 4)
	}
}

func TestSuite_RunDeterministic(t *testing.T) {
	mu := []float64{0.08, 0.03, 0.12}
	sigma := testSigma([]float64{0.18, 0.05, 0.25}, 0.2)
	current := []float64{0.5, 0.3, 0.2}
	b := Bounds{Min: 0.0, Max: 0.4}

	suite := NewSuite(zerolog.Nop())
	first := suite.Run(mu, sigma, current, b, 0.15)
	second := suite.Run(mu, sigma, current, b, 0.15)

	require.Len(t, second.Weights, len(first.Weights))
	for i := range first.Weights {
		assert.InDelta(t, first.Weights[i], second.Weights[i], 1e-9,
			"repeated runs over the same inputs should agree")
	}
}

func TestSuite_SingleAsset(t *testing.T) {
	suite := NewSuite(zerolog.Nop())
	result := suite.Run([]float64{0.08}, testSigma([]float64{0.18}, 0), []float64{1.0}, Bounds{Min: 0, Max: 0.4}, 0.15)

	require.Len(t, result.Weights, 1)
	assert.InDelta(t, 1.0, result.Weights[0], 1e-9)
}
