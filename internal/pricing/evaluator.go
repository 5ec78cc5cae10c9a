package pricing

import "math"

// Metrics holds the option price together with its raw partial
// derivatives at one evaluation point:
//
//	Delta = ∂Price/∂S
//	Gamma = ∂²Price/∂S²
//	Theta = ∂Price/∂T (annualized; positive for long options)
//	Vega  = ∂Price/∂sigma (per whole volatility unit)
//
// Sign and scaling conventions for reporting (per-day decay, per-point
// vega) are applied by callers, not here, so that Theta and Vega stay
// usable as plain derivatives inside the solvers.
type Metrics struct {
	Price float64
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
}

// Evaluator produces the price and exact sensitivities of a European
// option at a fixed evaluation point. Implementations must be exact to
// floating-point precision (no iteration, no approximation error) and
// hold no mutable state, so a single instance is safe for concurrent
// callers.
type Evaluator interface {
	Evaluate(isCall bool, S, K, T, sigma float64) (Metrics, error)
}

// analyticEvaluator derives the Greeks from the closed-form zero-rate
// Black-Scholes formulas. Mathematically equivalent to the autodiff
// evaluator; kept as an independent implementation so the two can
// cross-check each other.
type analyticEvaluator struct{}

// NewAnalyticEvaluator returns an Evaluator backed by the closed-form
// Greek formulas.
func NewAnalyticEvaluator() Evaluator { return analyticEvaluator{} }

func (analyticEvaluator) Evaluate(isCall bool, S, K, T, sigma float64) (Metrics, error) {
	price, err := Price(isCall, S, K, T, sigma)
	if err != nil {
		return Metrics{}, err
	}

	d1, _ := d1d2(S, K, T, sigma)
	sqrtT := math.Sqrt(T)
	pdf := normPDF(d1)

	m := Metrics{
		Price: price,
		Delta: normCDF(d1),
		Gamma: pdf / (S * sigma * sqrtT),
		Theta: S * pdf * sigma / (2 * sqrtT),
		Vega:  S * pdf * sqrtT,
	}
	if !isCall {
		m.Delta -= 1
	}
	return m, nil
}
