package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestYearsToExpiry(t *testing.T) {
	asOf := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	oneYear := asOf.AddDate(1, 0, 0)
	assert.InDelta(t, 365.0/365.25, YearsToExpiry(oneYear, asOf), 1e-9)

	twoDays := asOf.AddDate(0, 0, 2)
	assert.InDelta(t, 2.0/365.25, YearsToExpiry(twoDays, asOf), 1e-9)

	assert.Less(t, YearsToExpiry(asOf.AddDate(0, 0, -1), asOf), 0.0)
	assert.Equal(t, 0.0, YearsToExpiry(asOf, asOf))
}

func TestOptionSymbolFromParts(t *testing.T) {
	expiry := time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "O:AAPL260918C00190000", OptionSymbolFromParts("aapl", expiry, "call", 190))
	assert.Equal(t, "O:AAPL260918P00190000", OptionSymbolFromParts("AAPL", expiry, "put", 190))
	assert.Equal(t, "O:SPY260918C00452500", OptionSymbolFromParts("SPY", expiry, "c", 452.5))
	assert.Equal(t, "O:SPY260918P00452500", OptionSymbolFromParts("SPY", expiry, "P", 452.5))
}
