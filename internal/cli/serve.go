package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hubrank/pkg/api"
	"github.com/matzehuels/hubrank/pkg/metrics"
	"github.com/matzehuels/hubrank/pkg/observability"
)

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		data    dataFlags
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rankings over HTTP",
		Long: `Serve starts the JSON API on the configured address (default :8080).

Routes:
  GET /healthz
  GET /v1/ranking?top=K&mode=directed|undirected
  GET /v1/airports/{code}?mode=directed|undirected
  GET /v1/reports/latest?mode=...
  GET /v1/reports/{id}
  GET /metrics

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srvCfg := c.cfg.Server
			if cmd.Flags().Changed("addr") {
				srvCfg.Addr = addr
			}
			opts := c.pipelineOptions(cmd, &data)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			store, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(context.WithoutCancel(ctx))

			reg := metrics.DefaultRegistry()
			observability.SetPipelineHooks(reg)
			observability.SetCacheHooks(reg)
			observability.SetHTTPHooks(reg)
			defer observability.Reset()

			server := api.New(runner, api.Config{
				Options: opts,
				Store:   store,
				Metrics: reg.Handler(),
				Logger:  c.Logger,
			})

			printInfo("Serving %s on %s", opts.Mode, StyleValue.Render(srvCfg.Addr))
			printDetail("airports: %s", opts.AirportsPath)
			printDetail("routes:   %s", opts.RoutesPath)
			return server.ListenAndServe(ctx, srvCfg)
		},
	}

	addDataFlags(cmd, &data)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}
