package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"assessor/internal/server"
)

// serveAPI is a test seam for running the HTTP server.
var serveAPI = server.Serve

func newServeCommand() *cobra.Command {
	var configPath, addr string
	cmd := &cobra.Command{
		Use:   "serve [--config <path>] [--addr <host:port>]",
		Short: "Serve the analysis HTTP API",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := buildApp(ctx, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			handler, err := server.NewHandler(server.Options{
				Analyzer:        a.engine,
				Gatherer:        a.registry,
				Logger:          a.logger,
				MaxRequestBytes: cfg.Server.MaxRequestBytes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving analysis API at http://%s\n", cfg.Server.Addr)
			if err := serveAPI(ctx, cfg.Server.Addr, handler); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to assessor.yml (default: search upward from the working directory)")
	cmd.Flags().StringVar(&addr, "addr", "", "Address to listen on (overrides server.addr)")
	return cmd
}
