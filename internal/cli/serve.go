package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelayout/pkg/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		auditURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout selection HTTP API",
		Long: `Serve the layout selection HTTP API.

Endpoints:
  POST /v1/select         route one slide
  POST /v1/decks          route a deck
  GET  /v1/layouts        list the catalog
  GET  /v1/layouts/{name} resolve a layout
  GET  /v1/rules          show the active rules
  GET  /v1/schema         input JSON Schema

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(cmd.Context(), cfg, auditURL)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner,
				server.WithLogger(c.Logger),
				server.WithRegistry(cfg.Registry()),
				server.WithPreset(cfg.Preset),
				server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
				server.WithConcurrency(cfg.Server.Concurrency),
			)
			printInfo("Serving %s preset on %s", cfg.Preset, StyleLink.Render(addr))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr in the config file)")
	cmd.Flags().StringVar(&auditURL, "audit", "", "audit sink URL (file://, redis://, mongodb://)")

	return cmd
}
