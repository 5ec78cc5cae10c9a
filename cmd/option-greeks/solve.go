package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	greeks "github.com/contactkeval/option-greeks"
	"github.com/contactkeval/option-greeks/internal/data"
	"github.com/contactkeval/option-greeks/internal/logger"
)

func newSolveCmd() *cobra.Command {
	var (
		kindStr    string
		underlying float64
		strike     float64
		expiry     float64
		days       float64
		iv         float64
		npv        float64
		fast       bool

		symbol     string
		expiryDate string
		apiKey     string
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a single option from flags or a live quote",
		Long: `Solve one option. Supply exactly one of --iv and --npv together with
--underlying, or pass --symbol and --expiry-date to fetch the spot and
option price from the market data provider first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := greeks.ParseKind(kindStr)
			if err != nil {
				return err
			}

			if days > 0 {
				expiry = days / 365.25
			}

			// Quote-driven mode: resolve underlying and npv from the
			// provider before solving.
			if symbol != "" {
				expDt, err := time.Parse("2006-01-02", expiryDate)
				if err != nil {
					return fmt.Errorf("--expiry-date must be YYYY-MM-DD: %w", err)
				}
				prov := newProvider(apiKey)
				now := time.Now()

				if underlying, err = prov.GetSpot(symbol, now); err != nil {
					return fmt.Errorf("fetch spot: %w", err)
				}
				if npv, err = prov.GetOptionPrice(symbol, strike, expDt, string(kind), now); err != nil {
					return fmt.Errorf("fetch option price: %w", err)
				}
				expiry = data.YearsToExpiry(expDt, now)
				logger.Infof("quote %s: spot=%.4f npv=%.4f tau=%.6f", symbol, underlying, npv, expiry)
			}

			opt := greeks.Option{
				Kind:       kind,
				Underlying: underlying,
				Strike:     strike,
				Expiry:     expiry,
				IV:         iv,
				NPV:        npv,
			}

			solved, err := solveOne(opt, fast)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(solved)
		},
	}

	cmd.Flags().StringVarP(&kindStr, "kind", "k", "", "option kind: call or put (required)")
	cmd.Flags().Float64VarP(&underlying, "underlying", "u", 0, "spot price of the underlying")
	cmd.Flags().Float64VarP(&strike, "strike", "s", 0, "strike price (required)")
	cmd.Flags().Float64VarP(&expiry, "expiry", "t", 0, "time to expiry in years")
	cmd.Flags().Float64VarP(&days, "days", "d", 0, "time to expiry in calendar days (alternative to --expiry)")
	cmd.Flags().Float64Var(&iv, "iv", 0, "known implied volatility (derives npv)")
	cmd.Flags().Float64Var(&npv, "npv", 0, "known option price (derives iv)")
	cmd.Flags().BoolVar(&fast, "fast", false, "use the fast approximate IV path")
	cmd.Flags().StringVar(&symbol, "symbol", "", "fetch spot and option price for this ticker")
	cmd.Flags().StringVar(&expiryDate, "expiry-date", "", "contract expiry as YYYY-MM-DD (with --symbol)")
	cmd.Flags().StringVar(&apiKey, "api-key", os.Getenv("POLYGON_API_KEY"), "polygon API key (defaults to $POLYGON_API_KEY)")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("strike")

	return cmd
}

func solveOne(opt greeks.Option, fast bool) (greeks.Option, error) {
	if fast {
		return greeks.Fast(opt)
	}
	return greeks.Auto(opt)
}

// newProvider picks the market data provider the way the config layer
// does: polygon when a key is available, synthetic otherwise.
func newProvider(apiKey string) data.Provider {
	if apiKey != "" {
		return data.NewPolygonDataProvider(apiKey)
	}
	logger.Infof("no API key, using synthetic provider")
	return data.NewSyntheticProvider()
}
