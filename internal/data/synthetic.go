package data

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/contactkeval/option-greeks/internal/pricing"
)

// Volatility used to generate synthetic option quotes. Solving those
// quotes back through the engine recovers this value, which makes the
// synthetic provider convenient for offline demos and tests.
const synthVol = 0.35

// synthDataProvider implements Provider generating synthetic quotes.
// Prices are deterministic per (underlying, date) so repeated requests
// agree with each other.
type synthDataProvider struct {
	secondary Provider
}

// NewSyntheticProvider returns a Provider that fabricates market data
// without any network access.
func NewSyntheticProvider() Provider { return &synthDataProvider{} }

func (synthDataProv *synthDataProvider) Secondary() Provider {
	return synthDataProv.secondary
}

func (synthDataProv *synthDataProvider) GetSpot(underlying string, asOf time.Time) (float64, error) {
	rng := rand.New(rand.NewSource(seedFor(underlying, asOf)))
	return 50 + rng.Float64()*200, nil
}

func (synthDataProv *synthDataProvider) GetOptionPrice(underlying string, strike float64, expiryDate time.Time, optType string, asOf time.Time) (float64, error) {
	spot, err := synthDataProv.GetSpot(underlying, asOf)
	if err != nil {
		return 0, err
	}

	tau := YearsToExpiry(expiryDate, asOf)
	if tau <= 0 {
		return 0, fmt.Errorf("synthetic quote needs a future expiry, got %s", expiryDate.Format("2006-01-02"))
	}

	isCall := optType != "put" && optType != "p"
	return pricing.Price(isCall, spot, strike, tau, synthVol)
}

func (synthDataProv *synthDataProvider) GetRelevantExpiries(underlying string, fromDate, toDate time.Time) ([]time.Time, error) {
	// Listed expiries are approximated by weekly Fridays.
	var out []time.Time
	cur := fromDate
	for !cur.After(toDate) {
		if cur.Weekday() == time.Friday {
			out = append(out, cur)
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return out, nil
}

func seedFor(underlying string, asOf time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(underlying))
	h.Write([]byte(asOf.Format("2006-01-02")))
	return int64(h.Sum64())
}
