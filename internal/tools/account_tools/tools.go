package account_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/quickbooks-mcp/internal/accounts"
	"github.com/teemow/quickbooks-mcp/internal/server"
	"github.com/teemow/quickbooks-mcp/internal/tools/common"
)

// RegisterAccountTools registers the chart-of-accounts tools with the MCP
// server.
func RegisterAccountTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listAccountsTool := mcp.NewTool("list_accounts",
		mcp.WithDescription("List chart of accounts in QuickBooks. Can filter by account type."),
		mcp.WithString("accountType",
			mcp.Description("Filter by account type (e.g., Bank, Accounts Receivable, Income, Expense)"),
		),
		mcp.WithBoolean("activeOnly",
			mcp.Description("Only return active accounts (default: true)"),
		),
	)

	s.AddTool(listAccountsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Args(request)

		result, err := sc.AccountsClient().List(ctx, accounts.ListOptions{
			AccountType: common.StringArg(args, "accountType"),
			ActiveOnly:  common.BoolArg(args, "activeOnly", true),
		})
		if err != nil {
			return common.Error("list_accounts", err), nil
		}
		return common.Result("list_accounts", result), nil
	})

	accountBalancesTool := mcp.NewTool("get_account_balances",
		mcp.WithDescription("Get a summary of account balances grouped by classification (assets, liabilities, equity, income, expenses)"),
	)

	s.AddTool(accountBalancesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := sc.AccountsClient().Balances(ctx)
		if err != nil {
			return common.Error("get_account_balances", err), nil
		}
		return common.Result("get_account_balances", result), nil
	})

	return nil
}
