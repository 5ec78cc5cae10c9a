package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/contactkeval/option-greeks/internal/logger"
)

// polygonDataProvider implements Provider using the Polygon.io REST
// API over plain HTTP.
type polygonDataProvider struct {
	apiKey    string
	baseURL   string
	client    *http.Client
	secondary Provider
}

// NewPolygonDataProvider constructs a Polygon-backed data provider.
func NewPolygonDataProvider(apiKey string) Provider {
	logger.Infof("initializing polygon data provider")
	return &polygonDataProvider{
		apiKey:  apiKey,
		baseURL: "https://api.polygon.io",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (polygonDataProv *polygonDataProvider) Secondary() Provider {
	return polygonDataProv.secondary
}

func (polygonDataProv *polygonDataProvider) GetSpot(underlying string, asOf time.Time) (float64, error) {
	// Query a short window of daily bars ending at asOf and take the
	// last close, so weekends and holidays resolve to the prior
	// session.
	from := asOf.AddDate(0, 0, -7)
	url := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/1/day/%s/%s?adjusted=true&sort=asc&limit=10&apiKey=%s",
		polygonDataProv.baseURL, underlying, from.Format("2006-01-02"), asOf.Format("2006-01-02"), polygonDataProv.apiKey)

	logger.Tracef("fetching spot for %s as of %s", underlying, asOf.Format("2006-01-02"))

	resp, err := polygonDataProv.client.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return 0, fmt.Errorf("polygon aggs status %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			Close float64 `json:"c"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	if len(body.Results) == 0 {
		if polygonDataProv.secondary != nil {
			return polygonDataProv.secondary.GetSpot(underlying, asOf)
		}
		return 0, fmt.Errorf("no bars for %s up to %s", underlying, asOf.Format("2006-01-02"))
	}
	return body.Results[len(body.Results)-1].Close, nil
}

func (polygonDataProv *polygonDataProvider) GetOptionPrice(underlying string, strike float64, expiryDate time.Time, optType string, asOf time.Time) (float64, error) {
	// Snapshot v3 mid price; requires option snapshot access on the
	// account's plan.
	symbol := OptionSymbolFromParts(underlying, expiryDate, optType, strike)
	url := fmt.Sprintf("%s/v3/snapshot/options/%s?apiKey=%s", polygonDataProv.baseURL, symbol, polygonDataProv.apiKey)

	logger.Tracef("fetching option price for %s", symbol)

	resp, err := polygonDataProv.client.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return 0, fmt.Errorf("polygon options snapshot status %d", resp.StatusCode)
	}

	var res struct {
		Min struct {
			Ask float64 `json:"ask"`
			Bid float64 `json:"bid"`
		} `json:"min"`
		Last struct {
			Price float64 `json:"price"`
		} `json:"last"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return 0, err
	}
	if res.Min.Ask > 0 && res.Min.Bid > 0 {
		return (res.Min.Ask + res.Min.Bid) / 2.0, nil
	}
	if res.Last.Price > 0 {
		return res.Last.Price, nil
	}
	if polygonDataProv.secondary != nil {
		return polygonDataProv.secondary.GetOptionPrice(underlying, strike, expiryDate, optType, asOf)
	}
	return 0, fmt.Errorf("no usable option price for %s", symbol)
}

func (polygonDataProv *polygonDataProvider) GetRelevantExpiries(underlying string, fromDate, toDate time.Time) ([]time.Time, error) {
	url := fmt.Sprintf("%s/v3/reference/options/contracts?underlying_ticker=%s&expiration_date.gte=%s&expiration_date.lte=%s&limit=1000&apiKey=%s",
		polygonDataProv.baseURL, underlying, fromDate.Format("2006-01-02"), toDate.Format("2006-01-02"), polygonDataProv.apiKey)

	resp, err := polygonDataProv.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("polygon contracts status %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			ExpiryDate string `json:"expiration_date"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []time.Time
	for _, r := range body.Results {
		if seen[r.ExpiryDate] {
			continue
		}
		seen[r.ExpiryDate] = true
		dt, err := time.Parse("2006-01-02", r.ExpiryDate)
		if err != nil {
			logger.Debugf("skipping unparseable expiry %q: %v", r.ExpiryDate, err)
			continue
		}
		out = append(out, dt)
	}
	return out, nil
}
