package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gamesolver/pkg/observability"
	"github.com/matzehuels/gamesolver/pkg/observability/prom"
	"github.com/matzehuels/gamesolver/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

Routes:
  GET  /healthz
  GET  /metrics
  GET  /v1/solvers
  POST /v1/solve
  GET  /v1/records
  GET  /v1/records/{id}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config.Server
			if !cmd.Flags().Changed("addr") && cfg.Addr != "" {
				addr = cfg.Addr
			}

			runner, err := c.newRunner(ctx, noCache, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			var opts []server.Option
			if d, _ := cfg.timeout(); d > 0 {
				opts = append(opts, server.WithSolveTimeout(d))
			}
			if cfg.MaxNodes > 0 {
				opts = append(opts, server.WithMaxNodes(cfg.MaxNodes))
			}
			if cfg.MaxBody > 0 {
				opts = append(opts, server.WithMaxBody(cfg.MaxBody))
			}
			if !noMetrics && cfg.metricsEnabled() {
				hooks := prom.New(prometheus.DefaultRegisterer)
				observability.SetSolverHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
				defer observability.Reset()
				opts = append(opts, server.WithMetrics(hooks.Handler()))
			}

			return server.New(runner, c.Logger, opts...).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
