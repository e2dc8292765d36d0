package report_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/quickbooks-mcp/internal/reports"
	"github.com/teemow/quickbooks-mcp/internal/server"
	"github.com/teemow/quickbooks-mcp/internal/tools/common"
)

// RegisterReportTools registers the financial report tools with the MCP
// server.
func RegisterReportTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	profitAndLossTool := mcp.NewTool("get_profit_and_loss",
		mcp.WithDescription("Get the Profit & Loss (Income Statement) report showing revenue, expenses, and net income for a period"),
		mcp.WithString("startDate",
			mcp.Description("Start date for the report (YYYY-MM-DD). Defaults to start of current fiscal year."),
		),
		mcp.WithString("endDate",
			mcp.Description("End date for the report (YYYY-MM-DD). Defaults to today."),
		),
	)

	s.AddTool(profitAndLossTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Args(request)

		report, err := sc.ReportsClient().ProfitAndLoss(ctx, reports.PeriodOptions{
			StartDate: common.StringArg(args, "startDate"),
			EndDate:   common.StringArg(args, "endDate"),
		})
		if err != nil {
			return common.Error("get_profit_and_loss", err), nil
		}
		return common.Result("get_profit_and_loss", report), nil
	})

	balanceSheetTool := mcp.NewTool("get_balance_sheet",
		mcp.WithDescription("Get the Balance Sheet report showing assets, liabilities, and equity as of a specific date"),
		mcp.WithString("asOfDate",
			mcp.Description("Date for the balance sheet (YYYY-MM-DD). Defaults to today."),
		),
	)

	s.AddTool(balanceSheetTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Args(request)

		report, err := sc.ReportsClient().BalanceSheet(ctx, reports.AsOfOptions{
			AsOfDate: common.StringArg(args, "asOfDate"),
		})
		if err != nil {
			return common.Error("get_balance_sheet", err), nil
		}
		return common.Result("get_balance_sheet", report), nil
	})

	arAgingTool := mcp.NewTool("get_ar_aging",
		mcp.WithDescription("Get the Accounts Receivable Aging Summary showing outstanding customer balances by age (current, 1-30 days, 31-60 days, etc.)"),
		mcp.WithString("asOfDate",
			mcp.Description("Date for the aging report (YYYY-MM-DD). Defaults to today."),
		),
	)

	s.AddTool(arAgingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Args(request)

		report, err := sc.ReportsClient().ARAgingSummary(ctx, reports.AsOfOptions{
			AsOfDate: common.StringArg(args, "asOfDate"),
		})
		if err != nil {
			return common.Error("get_ar_aging", err), nil
		}
		return common.Result("get_ar_aging", report), nil
	})

	return nil
}
