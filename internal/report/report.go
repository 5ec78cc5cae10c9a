// Package report writes solved option records to disk as JSON and CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	greeks "github.com/contactkeval/option-greeks"
)

// WriteJSON writes the solved chain to greeks.json in outdir.
func WriteJSON(results []greeks.Option, outdir string) error {
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "greeks.json"), b, 0644)
}

// WriteCSV writes the solved chain to greeks.csv in outdir, one row per
// option with its resolved volatility, price, and sensitivities.
func WriteCSV(results []greeks.Option, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "greeks.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{"kind", "underlying", "strike", "expiry", "iv", "npv", "delta", "gamma", "theta", "vega"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, o := range results {
		var g greeks.Greeks
		if o.Greeks != nil {
			g = *o.Greeks
		}
		row := []string{
			string(o.Kind),
			fmt.Sprintf("%.4f", o.Underlying),
			fmt.Sprintf("%.4f", o.Strike),
			fmt.Sprintf("%.6f", o.Expiry),
			fmt.Sprintf("%.6f", o.IV),
			fmt.Sprintf("%.6f", o.NPV),
			fmt.Sprintf("%.6f", g.Delta),
			fmt.Sprintf("%.6f", g.Gamma),
			fmt.Sprintf("%.6f", g.Theta),
			fmt.Sprintf("%.6f", g.Vega),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
