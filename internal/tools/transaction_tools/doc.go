// Package transaction_tools registers the MCP tool for searching purchases,
// payments and bills.
package transaction_tools
