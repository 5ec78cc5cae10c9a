// Package data provides market data providers that feed live quotes
// into the greeks engine: the underlying spot price and the option
// market price the implied volatility is solved from.
package data

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Provider supplies market data. Providers can be chained: when one
// cannot answer a request it delegates to its secondary.
type Provider interface {
	Secondary() Provider

	// GetSpot returns the underlying price as of the given date
	// (the most recent close on or before it).
	GetSpot(underlying string, asOf time.Time) (float64, error)

	// GetOptionPrice returns the market mid price of one contract.
	GetOptionPrice(underlying string, strike float64, expiryDate time.Time, optType string, asOf time.Time) (float64, error)

	// GetRelevantExpiries lists listed expiries in [fromDate, toDate].
	GetRelevantExpiries(underlying string, fromDate, toDate time.Time) ([]time.Time, error)
}

// YearsToExpiry converts a calendar expiry into the year fraction the
// pricing model expects, measured from asOf.
func YearsToExpiry(expiryDate, asOf time.Time) float64 {
	return expiryDate.Sub(asOf).Hours() / 24 / 365.25
}

// OptionSymbolFromParts formats an OCC-style option ticker:
// <root><YYMMDD><C|P><strike*1000 padded to 8 digits>.
func OptionSymbolFromParts(underlying string, expiryDate time.Time, optionType string, strike float64) string {
	expDt := expiryDate.UTC().Format("060102")
	optType := "C"
	if strings.ToLower(optionType) == "put" || strings.ToLower(optionType) == "p" {
		optType = "P"
	}
	strikeInt := int(math.Round(strike * 1000))
	return fmt.Sprintf("O:%s%s%s%08d", strings.ToUpper(underlying), expDt, optType, strikeInt)
}
