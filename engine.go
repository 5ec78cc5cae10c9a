package greeks

import (
	"github.com/contactkeval/option-greeks/internal/logger"
	"github.com/contactkeval/option-greeks/internal/pricing"
)

// Reporting conventions carried over from the reference quant library:
// theta as decay per calendar day, vega per percentage point of
// volatility.
const daysPerYear = 365.25

// ErrNonConvergence marks a Newton-Raphson volatility search that
// exhausted its iteration budget or produced a non-finite iterate.
var ErrNonConvergence = pricing.ErrNonConvergence

// evaluator is the single source of final prices and Greeks for both
// solve paths. The autodiff implementation is stateless, so one
// instance serves all callers concurrently.
var evaluator = pricing.NewAutodiffEvaluator()

// solverParams bound the exact volatility search. Like the logger's
// verbosity this is set once at startup, before any solving begins.
var solverParams = pricing.DefaultSolverParams()

// SetSolverLimits overrides the exact solver's iteration budget and
// price tolerance, typically from the config file's solver section. A
// zero or negative value keeps the corresponding default.
func SetSolverLimits(maxIter int, tol float64) {
	p := pricing.DefaultSolverParams()
	if maxIter > 0 {
		p.MaxIter = maxIter
	}
	if tol > 0 {
		p.Tol = tol
	}
	solverParams = p
	logger.Debugf("solver limits: maxIter=%d tol=%g", p.MaxIter, p.Tol)
}

// Auto solves the option with exact methods only: when NPV is the
// known quantity, implied volatility is recovered by Newton-Raphson
// through the differentiable evaluator; when IV is known there is
// nothing to search for. Either way the final price and Greeks come
// from one evaluator call at the resolved volatility.
//
// The returned Option is a fully populated copy of the input; the
// caller's record is never mutated. Fails with ErrInvalidInput or
// ErrNonConvergence.
func Auto(o Option) (Option, error) {
	return solve(o, false)
}

// Fast behaves exactly like Auto, except that when NPV is the known
// quantity the implied volatility comes from a closed-form
// approximation with a fixed refinement budget. If the approximation
// diverges the solve transparently retries through the exact path, so
// callers only ever see the final volatility or an error from the
// exact solver itself.
func Fast(o Option) (Option, error) {
	return solve(o, true)
}

func solve(o Option, fast bool) (Option, error) {
	if err := o.validate(); err != nil {
		return Option{}, err
	}

	isCall := o.Kind == Call
	sigma := o.IV

	if sigma == 0 {
		var err error
		if fast {
			sigma, err = pricing.FastImpliedVol(isCall, o.Underlying, o.Strike, o.Expiry, o.NPV)
			if err != nil {
				logger.Debugf("fast IV path failed (%v), retrying exact solver", err)
				sigma, err = pricing.ImpliedVolWith(solverParams, evaluator, isCall, o.Underlying, o.Strike, o.Expiry, o.NPV)
			}
		} else {
			sigma, err = pricing.ImpliedVolWith(solverParams, evaluator, isCall, o.Underlying, o.Strike, o.Expiry, o.NPV)
		}
		if err != nil {
			return Option{}, err
		}
	}

	m, err := evaluator.Evaluate(isCall, o.Underlying, o.Strike, o.Expiry, sigma)
	if err != nil {
		return Option{}, err
	}

	o.IV = sigma
	o.NPV = m.Price
	o.Greeks = &Greeks{
		Theta: -m.Theta / daysPerYear,
		Delta: m.Delta,
		Gamma: m.Gamma,
		Vega:  m.Vega / 100,
	}
	return o, nil
}
