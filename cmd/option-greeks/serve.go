package main

import (
	"github.com/spf13/cobra"

	greeks "github.com/contactkeval/option-greeks"
	"github.com/contactkeval/option-greeks/internal/config"
	"github.com/contactkeval/option-greeks/internal/logger"
	"github.com/contactkeval/option-greeks/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		Long: `Serve the greeks engine over HTTP: POST /v1/greeks accepts an option
record plus a solve mode (auto or fast) and returns the populated
record; GET /health reports liveness.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.LoadFromFile(configPath); err != nil {
					return err
				}
				logger.SetVerbosity(cfg.Logging.Verbosity)
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			greeks.SetSolverLimits(cfg.Solver.MaxIterations, cfg.Solver.Tolerance)

			return server.New().ListenAndServe(cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")

	return cmd
}
