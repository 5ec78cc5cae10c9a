// Package pricing implements the zero-rate Black-Scholes pricing core:
// the pricing formula itself, exact Greeks via either closed-form
// formulas or forward-mode automatic differentiation, and two implied
// volatility solvers (Newton-Raphson through the evaluator, and a fast
// scalar approximation with a divergence signal for fallback).
//
// The model assumes a zero risk-free rate and no dividends, so the
// discount factor drops out of every formula. All prices and Greeks are
// raw model quantities; display conventions (per-day theta, per-point
// vega) belong to the caller.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

const sqrt2Pi = 2.5066282746310002

var (
	// ErrDomain marks inputs outside the analytic model domain
	// (non-positive spot, strike, expiry, volatility or target price).
	ErrDomain = errors.New("input outside pricing model domain")

	// ErrNonConvergence marks a failed Newton-Raphson volatility search.
	ErrNonConvergence = errors.New("implied volatility did not converge")

	// ErrApproxDiverged marks a failed fast-approximation volatility
	// search. It is always recoverable by the exact solver.
	ErrApproxDiverged = errors.New("fast implied volatility approximation diverged")
)

// checkDomain rejects evaluation points the analytic formulas cannot
// price. Degenerate expiries and volatilities are errors rather than
// intrinsic-value fallbacks: the Greeks are undefined there and a
// silent fallback would poison the volatility search.
func checkDomain(S, K, T, sigma float64) error {
	switch {
	case S <= 0:
		return fmt.Errorf("spot %g: %w", S, ErrDomain)
	case K <= 0:
		return fmt.Errorf("strike %g: %w", K, ErrDomain)
	case T <= 0:
		return fmt.Errorf("expiry %g: %w", T, ErrDomain)
	case sigma <= 0:
		return fmt.Errorf("volatility %g: %w", sigma, ErrDomain)
	}
	return nil
}

// d1d2 computes the standard normal arguments shared by the price and
// every Greek:
//
//	d1 = (ln(S/K) + 0.5·sigma²·T) / (sigma·√T)
//	d2 = d1 - sigma·√T
//
// Callers must have validated the inputs first.
func d1d2(S, K, T, sigma float64) (d1, d2 float64) {
	sigSqrtT := sigma * math.Sqrt(T)
	d1 = (math.Log(S/K) + 0.5*sigma*sigma*T) / sigSqrtT
	d2 = d1 - sigSqrtT
	return d1, d2
}

// Price calculates the zero-rate Black-Scholes price of a European
// option.
//
// Parameters:
//   - isCall: true for call option, false for put option
//   - S: spot price of the underlying asset
//   - K: strike price of the option
//   - T: time to expiry in years
//   - sigma: volatility of the underlying asset (annual, as a decimal)
//
// Returns the theoretical option price, or ErrDomain when any input is
// non-positive.
func Price(isCall bool, S, K, T, sigma float64) (float64, error) {
	if err := checkDomain(S, K, T, sigma); err != nil {
		return 0, err
	}

	d1, d2 := d1d2(S, K, T, sigma)

	if isCall {
		return S*normCDF(d1) - K*normCDF(d2), nil
	}
	return K*normCDF(-d2) - S*normCDF(-d1), nil
}

// Intrinsic returns the exercise value of the option, the lower bound
// of any feasible market price under the zero-rate model.
func Intrinsic(isCall bool, S, K float64) float64 {
	if isCall {
		return math.Max(0, S-K)
	}
	return math.Max(0, K-S)
}

// normPDF calculates the standard normal probability density at x:
// exp(-0.5·x²) / sqrt(2π).
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / sqrt2Pi
}

// normCDF computes the cumulative distribution function of the standard
// normal distribution via the error function.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}
