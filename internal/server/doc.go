// Package server holds the shared state of the MCP server process.
//
// ServerContext owns the configuration, the endpoint discovery cache, the
// token store and the lazily constructed QuickBooks domain clients; tool
// handlers reach everything through it instead of package-level globals.
// MetricsServer optionally serves Prometheus metrics on a dedicated port.
package server
