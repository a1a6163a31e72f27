package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8002, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)

	assert.Equal(t, 0.0, cfg.Constraints.MinWeight)
	assert.Equal(t, 0.4, cfg.Constraints.MaxWeight)
	assert.Equal(t, 0.2, cfg.Constraints.MaxTurnover)
	assert.Equal(t, 3, cfg.Constraints.MinDiversification)

	assert.Equal(t, 0.15, cfg.Risk.TargetVolatility)
	assert.Equal(t, 0.05, cfg.Risk.VaRConfidence)
	assert.Equal(t, 0.05, cfg.Risk.RebalancingThreshold)

	// Load seeds from the package defaults; the two must not drift.
	assert.Equal(t, DefaultConstraints(), cfg.Constraints)
	assert.Equal(t, DefaultRiskParams(), cfg.Risk)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ALLOCATOR_PORT", "9000")
	t.Setenv("ALLOC_MAX_WEIGHT", "0.5")
	t.Setenv("RISK_TARGET_VOLATILITY", "0.12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 0.5, cfg.Constraints.MaxWeight)
	assert.Equal(t, 0.12, cfg.Risk.TargetVolatility)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	base := func() *Config {
		return &Config{
			Constraints: DefaultConstraints(),
			Risk:        DefaultRiskParams(),
		}
	}

	cfg := base()
	cfg.Constraints.MaxWeight = 0.0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Constraints.MaxTurnover = -0.1
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Constraints.MinDiversification = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Risk.TargetVolatility = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Risk.VaRConfidence = 0.6
	assert.Error(t, cfg.Validate())

	assert.NoError(t, base().Validate())
}
