package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/contactkeval/option-greeks/internal/logger"
)

var verbosity int

func main() {
	root := &cobra.Command{
		Use:   "option-greeks",
		Short: "Black-Scholes option Greeks and implied volatility",
		Long: `option-greeks prices European options under the zero-rate
Black-Scholes model. Given a market price it solves for implied
volatility; given a volatility it computes the theoretical price.
Either way it reports delta, gamma, theta, and vega.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetVerbosity(verbosity)
		},
	}

	root.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 1, "log verbosity (0=error 1=info 2=debug 3=trace)")

	root.AddCommand(
		newSolveCmd(),
		newChainCmd(),
		newServeCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
