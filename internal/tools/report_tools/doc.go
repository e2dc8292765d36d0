// Package report_tools registers the MCP tools for QuickBooks financial
// reports: profit and loss, balance sheet and accounts receivable aging.
package report_tools
