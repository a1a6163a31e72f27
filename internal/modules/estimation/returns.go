// Package estimation builds the expected-return vector and covariance
// matrix that feed the optimizer suite. With no historical price feed in
// scope, both are derived from upstream model predictions plus asset-class
// heuristics, and the covariance is repaired to be positive semi-definite
// before use.
package estimation

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// TradingDaysPerYear is used to annualize horizon returns.
const TradingDaysPerYear = 252

// HorizonPrediction is one model prediction for a symbol at one horizon.
type HorizonPrediction struct {
	ExpectedReturn float64 `json:"expected_return"`
}

// Predictions maps symbol -> horizon (e.g. "30d") -> prediction.
type Predictions map[string]map[string]HorizonPrediction

// Estimator derives expected returns and covariance from predictions and
// asset-class heuristics.
type Estimator struct {
	log zerolog.Logger
}

// NewEstimator creates a new return and covariance estimator.
func NewEstimator(log zerolog.Logger) *Estimator {
	return &Estimator{
		log: log.With().Str("component", "estimation").Logger(),
	}
}

// ExpectedReturns builds the annualized expected-return vector for the
// given symbols. Horizon predictions are annualized and averaged; symbols
// without predictions fall back to asset-class defaults. Never errors.
func (e *Estimator) ExpectedReturns(symbols []string, predictions Predictions) map[string]float64 {
	expected := make(map[string]float64, len(symbols))

	for _, symbol := range symbols {
		horizons := predictions[symbol]
		if len(horizons) == 0 {
			expected[symbol] = defaultExpectedReturn(symbol)
			continue
		}

		sum := 0.0
		count := 0
		for horizon, pred := range horizons {
			ret := pred.ExpectedReturn
			if ret == 0 {
				ret = DefaultEquityReturn
			}
			sum += annualizeHorizonReturn(ret, horizon)
			count++
		}

		if count > 0 {
			expected[symbol] = sum / float64(count)
		} else {
			expected[symbol] = defaultExpectedReturn(symbol)
		}
	}

	e.log.Debug().
		Int("num_symbols", len(symbols)).
		Int("num_predicted", len(predictions)).
		Msg("Built expected returns")

	return expected
}

// annualizeHorizonReturn scales a horizon return to an annual figure.
// Horizons use the "<n>d" day format; anything else is taken as already
// annualized.
func annualizeHorizonReturn(ret float64, horizon string) float64 {
	if !strings.Contains(horizon, "d") {
		return ret
	}
	days, err := strconv.Atoi(strings.TrimSuffix(horizon, "d"))
	if err != nil || days <= 0 {
		return ret
	}
	return ret * (TradingDaysPerYear / float64(days))
}
