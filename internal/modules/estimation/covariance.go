package estimation

import (
	"gonum.org/v1/gonum/mat"
)

// EigenvalueFloor is the minimum eigenvalue kept when repairing the
// covariance matrix to positive semi-definite.
const EigenvalueFloor = 1e-8

// Covariance builds the covariance matrix for the given symbols from
// asset-class volatilities and the pairwise correlation rule table:
// sigma_ij = vol_i * vol_j * corr_ij, then repaired to positive
// semi-definite by eigenvalue flooring. On any numerical failure it falls
// back to a diagonal matrix at the default equity volatility, so the
// caller always receives a usable matrix.
func (e *Estimator) Covariance(symbols []string) *mat.SymDense {
	n := len(symbols)
	if n == 0 {
		return &mat.SymDense{}
	}

	vols := make([]float64, n)
	for i, symbol := range symbols {
		vols[i] = defaultVolatility(symbol)
	}

	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		cov.SetSym(i, i, vols[i]*vols[i])
		for j := i + 1; j < n; j++ {
			corr := pairwiseCorrelation(symbols[i], symbols[j])
			cov.SetSym(i, j, vols[i]*vols[j]*corr)
		}
	}

	repaired, ok := floorEigenvalues(cov)
	if !ok {
		e.log.Warn().
			Int("num_symbols", n).
			Msg("Covariance eigen repair failed, using diagonal fallback")
		return diagonalFallback(n)
	}

	return repaired
}

// floorEigenvalues eigen-decomposes the matrix, floors eigenvalues at
// EigenvalueFloor and reconstructs. This guarantees a valid covariance
// even from a degenerate correlation table.
func floorEigenvalues(cov *mat.SymDense) (*mat.SymDense, bool) {
	n := cov.SymmetricDim()

	var eig mat.EigenSym
	if ok := eig.Factorize(cov, true); !ok {
		return nil, false
	}

	values := eig.Values(nil)
	for i := range values {
		if values[i] < EigenvalueFloor {
			values[i] = EigenvalueFloor
		}
	}

	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// Reconstruct Q * diag(values) * Q^T.
	scaled := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			scaled.Set(i, j, vectors.At(i, j)*values[j])
		}
	}
	var product mat.Dense
	product.Mul(scaled, vectors.T())

	repaired := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			// Average the off-diagonal pair to wash out float asymmetry.
			repaired.SetSym(i, j, (product.At(i, j)+product.At(j, i))/2)
		}
	}

	return repaired, true
}

// diagonalFallback returns a diagonal covariance at the default equity
// volatility for every asset.
func diagonalFallback(n int) *mat.SymDense {
	fallback := mat.NewSymDense(n, nil)
	variance := DefaultEquityVolatility * DefaultEquityVolatility
	for i := 0; i < n; i++ {
		fallback.SetSym(i, i, variance)
	}
	return fallback
}
