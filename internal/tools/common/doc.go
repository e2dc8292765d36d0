// Package common holds helpers shared by the tool packages: argument
// extraction from MCP requests and JSON result encoding with tool-call
// metrics.
package common
