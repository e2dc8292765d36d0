package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/quickbooks-mcp/internal/config"
	"github.com/teemow/quickbooks-mcp/internal/logging"
	"github.com/teemow/quickbooks-mcp/internal/server"
	"github.com/teemow/quickbooks-mcp/internal/tools/account_tools"
	"github.com/teemow/quickbooks-mcp/internal/tools/customer_tools"
	"github.com/teemow/quickbooks-mcp/internal/tools/invoice_tools"
	"github.com/teemow/quickbooks-mcp/internal/tools/report_tools"
	"github.com/teemow/quickbooks-mcp/internal/tools/transaction_tools"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	var (
		debugMode      bool
		tokenFile      string
		logFile        string
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server over stdio to provide
QuickBooks Online tools for AI assistants.

The server requires a prior 'quickbooks-mcp auth' run; tool calls fail with
an authentication error until tokens exist. Access tokens are refreshed
transparently before each API call when they are about to expire.

Configuration comes from QB_CLIENT_ID, QB_CLIENT_SECRET, QB_REDIRECT_URI and
QB_ENVIRONMENT (environment variables or a .env file).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if logFile == "" {
				logFile, err = logging.DefaultLogFile()
				if err != nil {
					return err
				}
			}
			logger, closeLog, err := logging.Setup(logFile, debugMode)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			shutdownCtx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			serverContext, err := server.NewServerContext(shutdownCtx, cfg, tokenFile, logging.NewSlogAdapter(logger))
			if err != nil {
				return fmt.Errorf("failed to create server context: %w", err)
			}

			var metricsServer *server.MetricsServer
			if metricsEnabled {
				metricsServer = server.NewMetricsServer(metricsAddr)
				go func() {
					if err := metricsServer.Start(); err != nil {
						logger.Error("metrics server stopped", logging.Err(err))
					}
				}()
			}

			// Shut everything down on SIGINT/SIGTERM.
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				cancel()
			}()

			defer func() {
				if metricsServer != nil {
					ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
					defer cancel()
					if err := metricsServer.Shutdown(ctx); err != nil {
						log.Printf("Error during metrics server shutdown: %v", err)
					}
				}
				if err := serverContext.Shutdown(); err != nil {
					log.Printf("Error during server context shutdown: %v", err)
				}
			}()

			mcpSrv := mcpserver.NewMCPServer("quickbooks-mcp", version,
				mcpserver.WithToolCapabilities(true),
			)

			if err := registerAllTools(mcpSrv, serverContext); err != nil {
				return err
			}

			logger.Info("QuickBooks MCP server running on stdio",
				"environment", string(cfg.Environment),
				"token_file", serverContext.TokenStore().Path())

			return runStdioServer(mcpSrv)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&tokenFile, "token-file", "", "Token file path (default: user cache directory)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Log file path (default: user cache directory)")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics", false, "Expose Prometheus metrics")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server listen address")

	return cmd
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAllTools registers all MCP tools
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Customers",
			register: func() error {
				return customer_tools.RegisterCustomerTools(mcpSrv, ctx)
			},
		},
		{
			name: "Invoices",
			register: func() error {
				return invoice_tools.RegisterInvoiceTools(mcpSrv, ctx)
			},
		},
		{
			name: "Accounts",
			register: func() error {
				return account_tools.RegisterAccountTools(mcpSrv, ctx)
			},
		},
		{
			name: "Reports",
			register: func() error {
				return report_tools.RegisterReportTools(mcpSrv, ctx)
			},
		},
		{
			name: "Transactions",
			register: func() error {
				return transaction_tools.RegisterTransactionTools(mcpSrv, ctx)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}
