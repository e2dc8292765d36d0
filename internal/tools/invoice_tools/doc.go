// Package invoice_tools registers the MCP tool for listing QuickBooks
// invoices with status and date-range filters.
package invoice_tools
