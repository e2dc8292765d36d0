package instrumentation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	// APIRequests counts outbound QuickBooks API requests by endpoint
	// class (e.g. "/query", "/reports/ProfitAndLoss") and outcome.
	APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickbooks_api_requests_total",
		Help: "Outbound QuickBooks API requests by endpoint and status.",
	}, []string{"endpoint", "status"})

	// TokenRefreshes counts access token refresh attempts by outcome.
	TokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickbooks_token_refreshes_total",
		Help: "Access token refresh attempts by status.",
	}, []string{"status"})

	// ToolCalls counts MCP tool invocations by tool name and outcome.
	ToolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickbooks_tool_calls_total",
		Help: "MCP tool invocations by tool and status.",
	}, []string{"tool", "status"})
)

// ObserveToolCall records one tool invocation.
func ObserveToolCall(tool string, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	ToolCalls.WithLabelValues(tool, status).Inc()
}
