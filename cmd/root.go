package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the quickbooks-mcp application
var rootCmd = &cobra.Command{
	Use:   "quickbooks-mcp",
	Short: "MCP server exposing QuickBooks Online data to AI assistants",
	Long: `quickbooks-mcp is a Model Context Protocol (MCP) server that exposes
QuickBooks Online accounting data (customers, invoices, accounts, reports
and transactions) as tools for AI assistants.

Run 'quickbooks-mcp auth' once to authorize with Intuit, then
'quickbooks-mcp serve' to start the server over stdio.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "quickbooks-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
