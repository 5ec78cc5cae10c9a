package pricing

import "math"

// Fast-path refinement parameters. The iteration budget is fixed and
// small: the Corrado-Miller seed lands close enough that Halley steps
// converge in two or three iterations for any target this solver
// accepts, and anything slower is handed to the exact solver instead.
const (
	fastMaxIter = 8
	fastTol     = 1e-7
)

// FastImpliedVol estimates implied volatility from a target price
// without touching the differentiable evaluator: a closed-form
// Corrado-Miller seed followed by a fixed budget of scalar Halley
// refinement steps against the call-price formula (puts are converted
// through zero-rate put-call parity first).
//
// It returns ErrApproxDiverged when the target price is outside the
// model's feasible range (at or below intrinsic value, or at or above
// the spot/strike upper bound) or when refinement fails to meet the
// tolerance within its budget. That error is a signal to fall back to
// ImpliedVol, never a terminal failure.
func FastImpliedVol(isCall bool, S, K, T, target float64) (float64, error) {
	if err := checkDomain(S, K, T, 1); err != nil {
		return 0, err
	}

	upper := S
	if !isCall {
		upper = K
	}
	if target <= Intrinsic(isCall, S, K) || target >= upper {
		return 0, ErrApproxDiverged
	}

	// Zero-rate parity: c - p = S - K. Refining against the call form
	// keeps one code path regardless of kind.
	c := target
	if !isCall {
		c = target + S - K
	}

	sigma := corradoMillerSeed(S, K, T, c)
	sqrtT := math.Sqrt(T)

	for i := 0; i < fastMaxIter; i++ {
		d1, d2 := d1d2(S, K, T, sigma)
		price := S*normCDF(d1) - K*normCDF(d2)

		diff := price - c
		if math.Abs(diff) < fastTol {
			return sigma, nil
		}

		vega := S * normPDF(d1) * sqrtT
		if vega < vegaFloor {
			return 0, ErrApproxDiverged
		}

		// Halley's method: a Newton step scaled by the local curvature
		// (vomma = vega·d1·d2/sigma).
		step := diff / vega
		denom := 1 - step*d1*d2/(2*sigma)
		if denom > 0.5 {
			step /= denom
		}

		sigma -= step
		if math.IsNaN(sigma) || sigma <= 0 {
			return 0, ErrApproxDiverged
		}
	}

	return 0, ErrApproxDiverged
}

// corradoMillerSeed inverts a quadratic expansion of the call price
// around the at-the-money point:
//
//	sigma·√T ≈ √(2π)/(S+K) · [c - (S-K)/2 + √((c - (S-K)/2)² - (S-K)²/π)]
//
// Far from the money the discriminant can go negative; it is clamped to
// zero, which degrades the seed but keeps it positive and finite for
// the refinement loop.
func corradoMillerSeed(S, K, T, c float64) float64 {
	x := c - (S-K)/2
	disc := x*x - (S-K)*(S-K)/math.Pi
	if disc < 0 {
		disc = 0
	}

	sigma := sqrt2Pi / (S + K) * (x + math.Sqrt(disc)) / math.Sqrt(T)
	if sigma <= 0 || math.IsNaN(sigma) {
		// Brenner-Subrahmanyam at-the-money fallback.
		sigma = c / S * sqrt2Pi / math.Sqrt(T)
	}
	if sigma < sigmaMin {
		sigma = sigmaMin
	}
	return sigma
}
