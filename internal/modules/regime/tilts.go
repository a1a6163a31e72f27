package regime

import (
	"strings"

	"github.com/rs/zerolog"
)

// Tilt magnitudes per regime, applied additively and scaled by confidence.
const (
	BullGrowthTilt    = 0.10  // Increase growth allocation
	BullBondTilt      = -0.05 // Reduce bond allocation
	BearDefensiveTilt = 0.15  // Increase defensive allocation
	BearGrowthTilt    = -0.10 // Reduce growth allocation
	BearBondTilt      = 0.10  // Increase bond allocation
)

// Ticker lists for tilt categories. Categories are sets, not a partition:
// a symbol may belong to more than one (TLT is both defensive and bond) and
// the matching adjustments add up.
var (
	growthTickers    = []string{"QQQ", "TQQQ", "ARKK"}
	defensiveTickers = []string{"TLT", "GLD", "VTI"}
	bondTickers      = []string{"TLT", "BND", "AGG"}
)

// Adjuster applies regime-specific tilts to an allocation.
type Adjuster struct {
	log zerolog.Logger
}

// NewAdjuster creates a new regime tilt adjuster.
func NewAdjuster(log zerolog.Logger) *Adjuster {
	return &Adjuster{
		log: log.With().Str("component", "regime_tilts").Logger(),
	}
}

// Apply returns a tilted copy of weights for the given regime context.
// Adjustments are additive and scaled by confidence; negative results are
// clipped to zero and the weights renormalized. Volatile and Stable apply
// no tilts: Stable by design, Volatile reserved for future hedge tilts.
func (a *Adjuster) Apply(weights map[string]float64, ctx Context) map[string]float64 {
	tilted := make(map[string]float64, len(weights))
	for symbol, w := range weights {
		tilted[symbol] = w
	}

	confidence := clamp01(ctx.Confidence)

	switch ctx.Regime {
	case RegimeBull:
		for symbol := range tilted {
			adjustment := 0.0
			if matchesAny(symbol, growthTickers) {
				adjustment += BullGrowthTilt * confidence
			}
			if matchesAny(symbol, bondTickers) {
				adjustment += BullBondTilt * confidence
			}
			tilted[symbol] = max0(tilted[symbol] + adjustment)
		}
	case RegimeBear:
		for symbol := range tilted {
			adjustment := 0.0
			if matchesAny(symbol, defensiveTickers) {
				adjustment += BearDefensiveTilt * confidence
			}
			if matchesAny(symbol, growthTickers) {
				adjustment += BearGrowthTilt * confidence
			}
			if matchesAny(symbol, bondTickers) {
				adjustment += BearBondTilt * confidence
			}
			tilted[symbol] = max0(tilted[symbol] + adjustment)
		}
	case RegimeVolatile, RegimeStable:
		// No adjustments.
	}

	total := 0.0
	for _, w := range tilted {
		total += w
	}
	if total > 0 {
		for symbol := range tilted {
			tilted[symbol] /= total
		}
	}

	a.log.Debug().
		Str("regime", string(ctx.Regime)).
		Float64("confidence", confidence).
		Int("num_symbols", len(tilted)).
		Msg("Applied regime tilts")

	return tilted
}

// matchesAny reports whether the symbol matches any ticker in the list by
// substring (so leveraged/variant tickers like TQQQ match via QQQ too).
func matchesAny(symbol string, tickers []string) bool {
	upper := strings.ToUpper(symbol)
	for _, t := range tickers {
		if strings.Contains(upper, t) {
			return true
		}
	}
	return false
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
