package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	greeks "github.com/contactkeval/option-greeks"
)

func TestSyntheticSpotDeterministic(t *testing.T) {
	p := NewSyntheticProvider()
	asOf := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	a, err := p.GetSpot("AAPL", asOf)
	require.NoError(t, err)
	b, err := p.GetSpot("AAPL", asOf)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	assert.GreaterOrEqual(t, a, 50.0)
	assert.Less(t, a, 250.0)

	other, err := p.GetSpot("MSFT", asOf)
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestSyntheticOptionPrice(t *testing.T) {
	p := NewSyntheticProvider()
	asOf := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	expiry := asOf.AddDate(0, 1, 0)

	spot, err := p.GetSpot("AAPL", asOf)
	require.NoError(t, err)

	price, err := p.GetOptionPrice("AAPL", spot, expiry, "call", asOf)
	require.NoError(t, err)
	assert.Greater(t, price, 0.0)

	_, err = p.GetOptionPrice("AAPL", spot, asOf.AddDate(0, 0, -1), "call", asOf)
	assert.Error(t, err, "expired contract")
}

// Synthetic quotes are generated at a fixed volatility, so feeding one
// back through the engine must recover that volatility.
func TestSyntheticQuoteRoundTrip(t *testing.T) {
	p := NewSyntheticProvider()
	asOf := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	expiry := asOf.AddDate(0, 3, 0)

	spot, err := p.GetSpot("TSLA", asOf)
	require.NoError(t, err)
	npv, err := p.GetOptionPrice("TSLA", spot, expiry, "call", asOf)
	require.NoError(t, err)

	solved, err := greeks.Auto(greeks.Option{
		Kind:       greeks.Call,
		Underlying: spot,
		Strike:     spot,
		Expiry:     YearsToExpiry(expiry, asOf),
		NPV:        npv,
	})
	require.NoError(t, err)
	assert.InDelta(t, synthVol, solved.IV, 1e-4)
}

func TestSyntheticExpiriesAreFridays(t *testing.T) {
	p := NewSyntheticProvider()
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday
	to := from.AddDate(0, 0, 28)

	expiries, err := p.GetRelevantExpiries("AAPL", from, to)
	require.NoError(t, err)
	assert.Len(t, expiries, 4)
	for _, e := range expiries {
		assert.Equal(t, time.Friday, e.Weekday())
	}
}
