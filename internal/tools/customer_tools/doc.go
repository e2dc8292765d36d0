// Package customer_tools registers the MCP tools for listing and fetching
// QuickBooks customers.
package customer_tools
