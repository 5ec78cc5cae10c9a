package pricing

import "math"

// jet is a second-order forward-mode dual number: a value plus its
// first and second derivatives with respect to one seeded input. Every
// arithmetic rule below propagates both derivative orders, so a single
// forward pass through the pricing formula yields ∂Price/∂x and
// ∂²Price/∂x² for whichever input was seeded.
type jet struct {
	v  float64 // value
	d  float64 // first derivative
	dd float64 // second derivative
}

// constJet lifts a constant into the computation; its derivatives are
// zero.
func constJet(v float64) jet { return jet{v: v} }

// varJet lifts the differentiation variable; d(x)/dx = 1.
func varJet(v float64) jet { return jet{v: v, d: 1} }

func (a jet) neg() jet { return jet{v: -a.v, d: -a.d, dd: -a.dd} }

func (a jet) add(b jet) jet {
	return jet{v: a.v + b.v, d: a.d + b.d, dd: a.dd + b.dd}
}

func (a jet) sub(b jet) jet {
	return jet{v: a.v - b.v, d: a.d - b.d, dd: a.dd - b.dd}
}

func (a jet) mul(b jet) jet {
	return jet{
		v:  a.v * b.v,
		d:  a.d*b.v + a.v*b.d,
		dd: a.dd*b.v + 2*a.d*b.d + a.v*b.dd,
	}
}

func (a jet) div(b jet) jet {
	q := a.v / b.v
	d := (a.d - q*b.d) / b.v
	return jet{
		v:  q,
		d:  d,
		dd: (a.dd - q*b.dd - 2*d*b.d) / b.v,
	}
}

func jetLog(a jet) jet {
	d := a.d / a.v
	return jet{
		v:  math.Log(a.v),
		d:  d,
		dd: (a.dd - d*a.d) / a.v,
	}
}

func jetSqrt(a jet) jet {
	v := math.Sqrt(a.v)
	d := a.d / (2 * v)
	return jet{
		v:  v,
		d:  d,
		dd: (a.dd - 2*d*d) / (2 * v),
	}
}

// jetCDF applies the standard normal CDF. Φ'(x) = φ(x) and
// φ'(x) = -x·φ(x) drive the chain rule for both orders.
func jetCDF(a jet) jet {
	pdf := normPDF(a.v)
	return jet{
		v:  normCDF(a.v),
		d:  pdf * a.d,
		dd: pdf * (a.dd - a.v*a.d*a.d),
	}
}

// priceJet evaluates the zero-rate Black-Scholes formula over jets.
// The graph structure is fixed, so derivative propagation is
// deterministic for identical inputs.
func priceJet(isCall bool, S, K, T, sigma jet) jet {
	sqrtT := jetSqrt(T)
	sigSqrtT := sigma.mul(sqrtT)

	half := constJet(0.5)
	d1 := jetLog(S.div(K)).add(half.mul(sigma).mul(sigma).mul(T)).div(sigSqrtT)
	d2 := d1.sub(sigSqrtT)

	if isCall {
		return S.mul(jetCDF(d1)).sub(K.mul(jetCDF(d2)))
	}
	return K.mul(jetCDF(d2.neg())).sub(S.mul(jetCDF(d1.neg())))
}

// autodiffEvaluator obtains the Greeks by differentiating the pricing
// formula itself rather than hand-derived expressions: one pass seeded
// on spot (delta and gamma), one on volatility (vega), one on time
// (theta).
type autodiffEvaluator struct{}

// NewAutodiffEvaluator returns an Evaluator backed by forward-mode
// automatic differentiation of the pricing formula.
func NewAutodiffEvaluator() Evaluator { return autodiffEvaluator{} }

func (autodiffEvaluator) Evaluate(isCall bool, S, K, T, sigma float64) (Metrics, error) {
	if err := checkDomain(S, K, T, sigma); err != nil {
		return Metrics{}, err
	}

	strike := constJet(K)
	spotPass := priceJet(isCall, varJet(S), strike, constJet(T), constJet(sigma))
	volPass := priceJet(isCall, constJet(S), strike, constJet(T), varJet(sigma))
	timePass := priceJet(isCall, constJet(S), strike, varJet(T), constJet(sigma))

	return Metrics{
		Price: spotPass.v,
		Delta: spotPass.d,
		Gamma: spotPass.dd,
		Vega:  volPass.d,
		Theta: timePass.d,
	}, nil
}
