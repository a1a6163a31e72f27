package optimization

// Ensemble blend shares per optimizer name. The return-seeking legs carry
// more weight than the defensive ones.
var ensembleShares = map[string]float64{
	"mean_variance":    0.30,
	"risk_parity":      0.30,
	"black_litterman":  0.20,
	"minimum_variance": 0.20,
}

// blendResults combines the per-optimizer weight vectors into one
// allocation using the fixed ensemble shares, then clips and renormalizes.
// Non-converged optimizers still contribute their fallback weights, so an
// individual solver failure degrades the blend instead of aborting it.
func blendResults(n int, results map[string]Result) []float64 {
	blended := make([]float64, n)
	totalShare := 0.0
	for name, result := range results {
		share, ok := ensembleShares[name]
		if !ok || len(result.Weights) != n {
			continue
		}
		for i, w := range result.Weights {
			blended[i] += share * w
		}
		totalShare += share
	}
	if totalShare < normalizationGuard {
		return equalWeights(n)
	}
	return clipAndNormalize(blended)
}
