// Package instrumentation defines the Prometheus metrics exposed by the
// optional metrics server: outbound API requests, token refreshes and MCP
// tool invocations. Labels are kept to low-cardinality values (endpoint
// class, tool name, success/error).
package instrumentation
