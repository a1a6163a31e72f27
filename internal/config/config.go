// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ConstraintSet holds the allocation constraints applied to every run.
// Values are immutable once loaded; per-request tuning happens through the
// request payload, not by mutating this struct.
type ConstraintSet struct {
	MinWeight          float64 // Minimum weight per asset
	MaxWeight          float64 // Maximum weight per asset (concentration limit)
	MaxTurnover        float64 // Maximum portfolio turnover per rebalancing
	MinDiversification int     // Minimum number of positions
	CashBuffer         float64 // Minimum cash position
}

// RiskParams holds the risk model parameters.
type RiskParams struct {
	TargetVolatility     float64 // Annual volatility target
	VaRConfidence        float64 // VaR tail probability (0.05 = 95% VaR)
	RebalancingThreshold float64 // Drift threshold that triggers rebalancing
}

// Config holds application configuration
type Config struct {
	LogLevel    string
	Port        int
	DevMode     bool
	Constraints ConstraintSet
	Risk        RiskParams
}

// DefaultConstraints returns the default allocation constraint set.
func DefaultConstraints() ConstraintSet {
	return ConstraintSet{
		MinWeight:          0.0,
		MaxWeight:          0.4,
		MaxTurnover:        0.2,
		MinDiversification: 3,
		CashBuffer:         0.05,
	}
}

// DefaultRiskParams returns the default risk parameters.
func DefaultRiskParams() RiskParams {
	return RiskParams{
		TargetVolatility:     0.15,
		VaRConfidence:        0.05,
		RebalancingThreshold: 0.05,
	}
}

// Load reads configuration from environment variables, starting from the
// package defaults so there is a single source of truth for them.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	constraints := DefaultConstraints()
	risk := DefaultRiskParams()

	cfg := &Config{
		Port:     getEnvAsInt("ALLOCATOR_PORT", 8002),
		DevMode:  getEnvAsBool("DEV_MODE", false),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Constraints: ConstraintSet{
			MinWeight:          getEnvAsFloat("ALLOC_MIN_WEIGHT", constraints.MinWeight),
			MaxWeight:          getEnvAsFloat("ALLOC_MAX_WEIGHT", constraints.MaxWeight),
			MaxTurnover:        getEnvAsFloat("ALLOC_MAX_TURNOVER", constraints.MaxTurnover),
			MinDiversification: getEnvAsInt("ALLOC_MIN_DIVERSIFICATION", constraints.MinDiversification),
			CashBuffer:         getEnvAsFloat("ALLOC_CASH_BUFFER", constraints.CashBuffer),
		},
		Risk: RiskParams{
			TargetVolatility:     getEnvAsFloat("RISK_TARGET_VOLATILITY", risk.TargetVolatility),
			VaRConfidence:        getEnvAsFloat("RISK_VAR_CONFIDENCE", risk.VaRConfidence),
			RebalancingThreshold: getEnvAsFloat("RISK_REBALANCING_THRESHOLD", risk.RebalancingThreshold),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is internally consistent
func (c *Config) Validate() error {
	if c.Constraints.MinWeight < 0 || c.Constraints.MinWeight > 1 {
		return fmt.Errorf("min weight %.4f outside [0,1]", c.Constraints.MinWeight)
	}
	if c.Constraints.MaxWeight <= c.Constraints.MinWeight || c.Constraints.MaxWeight > 1 {
		return fmt.Errorf("max weight %.4f must be in (%.4f, 1]", c.Constraints.MaxWeight, c.Constraints.MinWeight)
	}
	if c.Constraints.MaxTurnover <= 0 {
		return fmt.Errorf("max turnover %.4f must be positive", c.Constraints.MaxTurnover)
	}
	if c.Constraints.MinDiversification < 1 {
		return fmt.Errorf("min diversification %d must be at least 1", c.Constraints.MinDiversification)
	}
	if c.Risk.TargetVolatility <= 0 {
		return fmt.Errorf("target volatility %.4f must be positive", c.Risk.TargetVolatility)
	}
	if c.Risk.VaRConfidence <= 0 || c.Risk.VaRConfidence >= 0.5 {
		return fmt.Errorf("VaR confidence %.4f must be in (0, 0.5)", c.Risk.VaRConfidence)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
