package optimization

import (
	"sync"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// EnsembleMethod is the reported optimization method when the full blend
// runs.
const EnsembleMethod = "ensemble"

// Suite fans the four optimizers out concurrently and blends their
// results.
type Suite struct {
	log zerolog.Logger
}

// NewSuite creates an optimizer suite.
func NewSuite(log zerolog.Logger) *Suite {
	return &Suite{
		log: log.With().Str("component", "optimization").Logger(),
	}
}

// SuiteResult carries the blended allocation plus the per-optimizer
// outcomes for diagnostics.
type SuiteResult struct {
	Weights []float64
	Method  string
	Results map[string]Result
}

// Run solves all four optimizers concurrently over the same inputs and
// blends the results. A panicking solver is recovered into its
// equal-weight fallback so one bad solve never takes the request down.
func (s *Suite) Run(mu []float64, sigma *mat.SymDense, currentWeights []float64, b Bounds, riskTarget float64) SuiteResult {
	n := len(mu)
	optimizers := []Optimizer{
		NewMeanVariance(riskTarget),
		NewRiskParity(),
		NewBlackLitterman(currentWeights),
		NewMinVariance(),
	}

	results := make(map[string]Result, len(optimizers))
	var resultsMu sync.Mutex
	var wg sync.WaitGroup
	for _, opt := range optimizers {
		wg.Add(1)
		go func(opt Optimizer) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.log.Error().
						Str("optimizer", opt.Name()).
						Interface("panic", r).
						Msg("Optimizer panicked, using fallback")
					resultsMu.Lock()
					results[opt.Name()] = fallbackResult(n)
					resultsMu.Unlock()
				}
			}()
			result := opt.Solve(mu, sigma, b)
			if !result.Converged {
				s.log.Warn().
					Str("optimizer", opt.Name()).
					Msg("Optimizer did not converge, using fallback")
			}
			resultsMu.Lock()
			results[opt.Name()] = result
			resultsMu.Unlock()
		}(opt)
	}
	wg.Wait()

	return SuiteResult{
		Weights: blendResults(n, results),
		Method:  EnsembleMethod,
		Results: results,
	}
}
