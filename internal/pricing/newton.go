package pricing

import (
	"fmt"
	"math"
)

// Newton-Raphson search parameters. The tolerance is in price units;
// the sigma guardrails keep iterates inside the model domain when a
// step overshoots.
const (
	newtonSeed    = 0.20
	newtonMaxIter = 100
	newtonTol     = 1e-6
	vegaFloor     = 1e-8
	sigmaMin      = 1e-4
	sigmaMax      = 5.0
)

// SolverParams bound the Newton-Raphson search. The zero value of a
// field means "use the package default", so callers only set what they
// override.
type SolverParams struct {
	MaxIter int     // iteration budget
	Tol     float64 // convergence tolerance in price units
}

// DefaultSolverParams returns the stock search bounds.
func DefaultSolverParams() SolverParams {
	return SolverParams{MaxIter: newtonMaxIter, Tol: newtonTol}
}

// ImpliedVol inverts the pricing formula for volatility given a target
// price, using Newton-Raphson with the evaluator's vega as the
// derivative at each iterate:
//
//	sigma ← sigma - (price(sigma) - target) / vega(sigma)
//
// The search stops when the price residual falls below the tolerance.
// A non-finite iterate, an underflowing vega, or an exhausted iteration
// budget fail with ErrNonConvergence; out-of-range iterates are clamped
// back into the domain and the search continues, so a clamped run that
// still converges returns a valid volatility.
func ImpliedVol(ev Evaluator, isCall bool, S, K, T, target float64) (float64, error) {
	return ImpliedVolWith(DefaultSolverParams(), ev, isCall, S, K, T, target)
}

// ImpliedVolWith is ImpliedVol with explicit search bounds, for callers
// that carry solver overrides in their configuration.
func ImpliedVolWith(p SolverParams, ev Evaluator, isCall bool, S, K, T, target float64) (float64, error) {
	if p.MaxIter <= 0 {
		p.MaxIter = newtonMaxIter
	}
	if p.Tol <= 0 {
		p.Tol = newtonTol
	}

	if err := checkDomain(S, K, T, newtonSeed); err != nil {
		return 0, err
	}
	if target <= 0 {
		return 0, fmt.Errorf("target price %g: %w", target, ErrDomain)
	}

	sigma := newtonSeed
	for i := 0; i < p.MaxIter; i++ {
		m, err := ev.Evaluate(isCall, S, K, T, sigma)
		if err != nil {
			return 0, err
		}

		diff := m.Price - target
		if math.Abs(diff) < p.Tol {
			return sigma, nil
		}

		if m.Vega < vegaFloor {
			return 0, fmt.Errorf("vega %g underflowed at sigma=%g: %w", m.Vega, sigma, ErrNonConvergence)
		}

		sigma -= diff / m.Vega
		if math.IsNaN(sigma) || math.IsInf(sigma, 0) {
			return 0, fmt.Errorf("iterate became non-finite: %w", ErrNonConvergence)
		}

		// Guardrails
		if sigma < sigmaMin {
			sigma = sigmaMin
		}
		if sigma > sigmaMax {
			sigma = sigmaMax
		}
	}

	return 0, fmt.Errorf("no solution after %d iterations: %w", p.MaxIter, ErrNonConvergence)
}
