package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aretw0/solliq"
	"github.com/aretw0/solliq/pkg/adapters/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newMCPCmd() *cobra.Command {
	var transport string
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Exposes the calculator as MCP tools and resources.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			calc, cleanup, err := e.sampler(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			opts := []mcp.Option{mcp.WithLogger(e.logger)}
			store, err := e.presets()
			if err != nil {
				return err
			}
			if store != nil {
				opts = append(opts, mcp.WithPresets(store))
			}
			srv := mcp.NewServer(calc, opts...)

			switch transport {
			case "stdio":
				// Logs go to stderr so they never corrupt JSON-RPC on stdout.
				e.logger.Info("starting solliq MCP server (stdio)", "version", strings.TrimSpace(solliq.Version))
				return srv.ServeStdio()
			case "sse":
				return srv.ServeSSE(ctx, e.cfg.MCP.Port)
			}
			return fmt.Errorf("unknown transport %q (want stdio or sse)", transport)
		},
	}
	cmd.Flags().StringVarP(&transport, "transport", "t", "stdio", "transport: stdio or sse")
	cmd.Flags().IntP("port", "p", 8081, "port of the sse transport")
	_ = viper.BindPFlag("mcp.port", cmd.Flags().Lookup("port"))
	return cmd
}
