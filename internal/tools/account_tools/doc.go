// Package account_tools registers the MCP tools for the QuickBooks chart of
// accounts and the balance summary.
package account_tools
