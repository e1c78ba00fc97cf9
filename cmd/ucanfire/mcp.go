package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/ucanfire/pkg/adapters/mcp"
	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the questionnaire to AI agents as MCP tools
(current_question, answer, restart, get_table) and the ucanfire://table resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		a, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := mcp.NewServer(a.manager(domain.LifecycleHooks{}),
			mcp.WithLogger(logger),
			mcp.WithMaxInputSize(cfg.MaxInputSize),
		)

		switch transport {
		case "stdio":
			// Logs go to Stderr so they never corrupt JSON-RPC on Stdout.
			logger.Info("starting U CAN FIRE MCP server (stdio)")
			if err := srv.ServeStdio(); err != nil {
				return fmt.Errorf("mcp server execution failed: %w", err)
			}
		case "sse":
			logger.Info("starting U CAN FIRE MCP server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port, cfg.HTTP.ShutdownTimeout); err != nil {
				return fmt.Errorf("mcp server execution failed: %w", err)
			}
			logger.Info("MCP server stopped gracefully")
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
