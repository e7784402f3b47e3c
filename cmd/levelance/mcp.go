package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/levelance/internal/cli"
	"github.com/aretw0/levelance/pkg/adapters/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Starts the decoder as an MCP Server, exposing the decode and explain tools
and the levelance://symbols resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			transport := a.cfg.MCP.Transport
			if cmd.Flags().Changed("transport") {
				transport, _ = cmd.Flags().GetString("transport")
			}
			port := a.cfg.MCP.Port
			if cmd.Flags().Changed("port") {
				port, _ = cmd.Flags().GetInt("port")
			}

			eng := cli.CreateEngine(cli.EngineOptions{Strict: a.strict, Cache: a.cache}, a.logger)
			srv := mcp.NewServer(eng)

			switch transport {
			case "stdio":
				// Ensure logs don't corrupt JSON-RPC on Stdout
				log.SetOutput(os.Stderr)
				a.logger.Info("Starting Levelance MCP Server (Stdio)...")
				if err := srv.ServeStdio(); err != nil {
					return fmt.Errorf("mcp server execution failed: %w", err)
				}
				return nil
			case "sse":
				a.logger.Info("Starting Levelance MCP Server (SSE)", "port", port)

				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("mcp server execution failed: %w", err)
				}
				a.logger.Info("MCP Server stopped gracefully")
				return nil
			default:
				return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
			}
		},
	}
	cmd.Flags().StringP("transport", "t", "stdio", "Transport to use (stdio, sse)")
	cmd.Flags().IntP("port", "p", 8081, "Port for SSE transport")
	return cmd
}
