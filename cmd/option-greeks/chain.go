package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	greeks "github.com/contactkeval/option-greeks"
	"github.com/contactkeval/option-greeks/internal/data"
	"github.com/contactkeval/option-greeks/internal/logger"
	"github.com/contactkeval/option-greeks/internal/report"
)

func newChainCmd() *cobra.Command {
	var (
		file       string
		underlying float64
		fast       bool
		outDir     string
	)

	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Solve every option in a CSV chain file",
		Long: `Read an option chain (CSV with header kind,strike,expiry,price),
solve the implied volatility and Greeks for every row against one
underlying price, and write greeks.json and greeks.csv reports.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := data.ReadChainCSV(file)
			if err != nil {
				return err
			}

			start := time.Now()
			results := make([]greeks.Option, 0, len(rows))
			failures := 0

			for i, row := range rows {
				kind, err := greeks.ParseKind(row.Kind)
				if err != nil {
					return fmt.Errorf("row %d: %w", i+1, err)
				}

				solved, err := solveOne(greeks.Option{
					Kind:       kind,
					Underlying: underlying,
					Strike:     row.Strike,
					Expiry:     row.Expiry,
					NPV:        row.Price,
				}, fast)
				if err != nil {
					logger.Errorf("row %d (%s %.2f): %v", i+1, kind, row.Strike, err)
					failures++
					continue
				}
				results = append(results, solved)
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("create output dir %s: %w", outDir, err)
			}
			if err := report.WriteJSON(results, outDir); err != nil {
				return err
			}
			if err := report.WriteCSV(results, outDir); err != nil {
				return err
			}

			logger.Infof("solved %d/%d rows in %v, reports in %s",
				len(results), len(rows), time.Since(start), outDir)
			if failures > 0 {
				return fmt.Errorf("%d of %d rows failed to solve", failures, len(rows))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "chain CSV file (required)")
	cmd.Flags().Float64VarP(&underlying, "underlying", "u", 0, "spot price shared by every row (required)")
	cmd.Flags().BoolVar(&fast, "fast", false, "use the fast approximate IV path")
	cmd.Flags().StringVarP(&outDir, "out", "o", "reports", "output directory")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("underlying")

	return cmd
}
