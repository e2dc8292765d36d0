// Package cmd implements the command-line interface for quickbooks-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server to provide QuickBooks tools for AI assistants
//   - auth: Run the one-shot interactive OAuth authorization flow
//   - auth status: Show the stored authorization state
//   - auth revoke: Revoke the stored refresh token and clear local tokens
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
