package common

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/quickbooks-mcp/internal/instrumentation"
)

// Args extracts the argument map from a tool request. Missing or mistyped
// arguments yield an empty map; individual accessors apply their defaults.
func Args(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

// StringArg returns a string argument or "" when absent.
func StringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

// BoolArg returns a boolean argument, or def when absent.
func BoolArg(args map[string]interface{}, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

// IntArg returns a numeric argument as int, or 0 when absent. JSON numbers
// arrive as float64.
func IntArg(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

// FloatArg returns a numeric argument as *float64, or nil when absent, so
// zero values stay distinguishable from unset.
func FloatArg(args map[string]interface{}, key string) *float64 {
	if v, ok := args[key].(float64); ok {
		return &v
	}
	return nil
}

// Result marshals v as an indented JSON text result and records the tool
// call metric.
func Result(tool string, v any) *mcp.CallToolResult {
	instrumentation.ObserveToolCall(tool, nil)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to encode result: " + err.Error())
	}
	return mcp.NewToolResultText(string(data))
}

// Error records a failed tool call metric and returns the error result.
func Error(tool string, err error) *mcp.CallToolResult {
	instrumentation.ObserveToolCall(tool, err)
	return mcp.NewToolResultError(err.Error())
}
