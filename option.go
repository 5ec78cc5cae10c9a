// Package greeks prices European options under the zero-rate
// Black-Scholes model. Given either a market price or a volatility it
// derives the missing quantity plus the first-order sensitivities
// (delta, gamma, theta, vega), with an exact Newton-Raphson path and a
// fast approximate path that falls back to the exact one.
package greeks

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects the option payoff.
type Kind string

const (
	Call Kind = "call"
	Put  Kind = "put"
)

// ParseKind normalizes a user-supplied option kind. "c", "call", "p"
// and "put" are accepted in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "c", "call":
		return Call, nil
	case "p", "put":
		return Put, nil
	}
	return "", fmt.Errorf("kind %q must be call or put: %w", s, ErrInvalidInput)
}

// Greeks are the sensitivities of the option price, always produced
// together from one evaluation point.
//
// Conventions: theta is the per-day time decay (negative for long
// options), delta and gamma are raw derivatives with respect to the
// underlying, vega is the price change per one percentage point of
// volatility.
type Greeks struct {
	Theta float64 `json:"theta"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
}

// Option is the caller-owned input and output record of the engine.
//
// Exactly one of IV and NPV must be supplied (non-zero); the other is
// derived. After a successful solve both are populated and mutually
// consistent under the pricing formula to solver tolerance, and Greeks
// is set.
type Option struct {
	// Kind is "call" or "put".
	Kind Kind `json:"kind"`

	// Underlying is the current spot price.
	Underlying float64 `json:"underlying"`

	// Strike is the option strike price.
	Strike float64 `json:"strike"`

	// Expiry is the time to expiry in fractions of a year
	// (e.g. two days to expiration is 2/365).
	Expiry float64 `json:"expiry"`

	// IV is the annualized volatility. Zero means "derive from NPV".
	IV float64 `json:"iv,omitempty"`

	// NPV is the option's market or theoretical price. Zero means
	// "derive from IV".
	NPV float64 `json:"npv,omitempty"`

	// Greeks is populated by a successful solve.
	Greeks *Greeks `json:"greeks,omitempty"`
}

// ErrInvalidInput marks a malformed Option: non-positive terms, or an
// over- or under-specified IV/NPV pair. No partial result accompanies
// it.
var ErrInvalidInput = errors.New("invalid option input")

func (o Option) validate() error {
	if o.Kind != Call && o.Kind != Put {
		return fmt.Errorf("kind %q must be %q or %q: %w", o.Kind, Call, Put, ErrInvalidInput)
	}
	if o.Underlying <= 0 {
		return fmt.Errorf("underlying %g must be positive: %w", o.Underlying, ErrInvalidInput)
	}
	if o.Strike <= 0 {
		return fmt.Errorf("strike %g must be positive: %w", o.Strike, ErrInvalidInput)
	}
	if o.Expiry <= 0 {
		return fmt.Errorf("expiry %g must be positive: %w", o.Expiry, ErrInvalidInput)
	}
	if o.IV < 0 {
		return fmt.Errorf("iv %g must not be negative: %w", o.IV, ErrInvalidInput)
	}
	if o.NPV < 0 {
		return fmt.Errorf("npv %g must not be negative: %w", o.NPV, ErrInvalidInput)
	}
	if (o.IV > 0) == (o.NPV > 0) {
		return fmt.Errorf("exactly one of iv and npv must be supplied: %w", ErrInvalidInput)
	}
	return nil
}
