package estimation

import "strings"

// Asset-class ticker lists used when no model prediction is available.
// Matching is by substring against the upper-cased symbol, so leveraged and
// variant tickers (TQQQ, anything embedding BND) land in the right bucket.
var (
	bondReturnTickers      = []string{"TLT", "BND", "AGG", "IEF"}
	growthReturnTickers    = []string{"QQQ", "TQQQ", "SOXL", "ARKK"}
	valueReturnTickers     = []string{"VTV", "IVE", "VXUS"}
	commodityReturnTickers = []string{"GLD", "SLV", "USO", "DBC"}

	bondVolTickers      = []string{"TLT", "BND", "AGG"}
	growthVolTickers    = []string{"QQQ", "TQQQ", "ARKK"}
	commodityVolTickers = []string{"GLD", "USO"}

	// Correlation asset classes.
	equityTickers        = []string{"SPY", "QQQ", "IWM", "VTI", "AAPL", "MSFT", "GOOGL"}
	bondTickers          = []string{"TLT", "BND", "AGG", "IEF", "SHY"}
	commodityTickers     = []string{"GLD", "SLV", "USO", "DBC"}
	internationalTickers = []string{"EFA", "EEM", "VEA", "VWO"}
)

// Default annualized expected returns and volatilities per asset class.
const (
	DefaultBondReturn      = 0.03
	DefaultGrowthReturn    = 0.12
	DefaultValueReturn     = 0.09
	DefaultCommodityReturn = 0.05
	DefaultEquityReturn    = 0.08

	DefaultBondVolatility      = 0.05
	DefaultGrowthVolatility    = 0.25
	DefaultCommodityVolatility = 0.20
	DefaultEquityVolatility    = 0.18
)

// defaultExpectedReturn returns the asset-class default expected return for
// a symbol.
func defaultExpectedReturn(symbol string) float64 {
	switch {
	case matchesAny(symbol, bondReturnTickers):
		return DefaultBondReturn
	case matchesAny(symbol, growthReturnTickers):
		return DefaultGrowthReturn
	case matchesAny(symbol, valueReturnTickers):
		return DefaultValueReturn
	case matchesAny(symbol, commodityReturnTickers):
		return DefaultCommodityReturn
	default:
		return DefaultEquityReturn
	}
}

// defaultVolatility returns the asset-class default annualized volatility
// for a symbol.
func defaultVolatility(symbol string) float64 {
	switch {
	case matchesAny(symbol, bondVolTickers):
		return DefaultBondVolatility
	case matchesAny(symbol, growthVolTickers):
		return DefaultGrowthVolatility
	case matchesAny(symbol, commodityVolTickers):
		return DefaultCommodityVolatility
	default:
		return DefaultEquityVolatility
	}
}

// pairwiseCorrelation estimates the correlation between two assets from
// their asset classes via a symmetric rule table.
func pairwiseCorrelation(symbol1, symbol2 string) float64 {
	s1Equity := matchesAny(symbol1, equityTickers)
	s2Equity := matchesAny(symbol2, equityTickers)
	s1Bond := matchesAny(symbol1, bondTickers)
	s2Bond := matchesAny(symbol2, bondTickers)
	s1Commodity := matchesAny(symbol1, commodityTickers)
	s2Commodity := matchesAny(symbol2, commodityTickers)
	s1Intl := matchesAny(symbol1, internationalTickers)
	s2Intl := matchesAny(symbol2, internationalTickers)

	switch {
	case s1Equity && s2Equity:
		if s1Intl || s2Intl {
			return 0.70 // US-international equity
		}
		return 0.85 // US equity pair
	case s1Bond && s2Bond:
		return 0.80
	case s1Commodity && s2Commodity:
		return 0.60
	case (s1Equity && s2Bond) || (s1Bond && s2Equity):
		return -0.20 // Stock-bond hedge
	case (s1Equity && s2Commodity) || (s1Commodity && s2Equity):
		return 0.30
	case (s1Bond && s2Commodity) || (s1Commodity && s2Bond):
		return 0.10
	default:
		return 0.50 // Moderate correlation when classes are unknown
	}
}

func matchesAny(symbol string, tickers []string) bool {
	upper := strings.ToUpper(symbol)
	for _, t := range tickers {
		if strings.Contains(upper, t) {
			return true
		}
	}
	return false
}
