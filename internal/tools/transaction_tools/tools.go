package transaction_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/quickbooks-mcp/internal/server"
	"github.com/teemow/quickbooks-mcp/internal/tools/common"
	"github.com/teemow/quickbooks-mcp/internal/transactions"
)

// RegisterTransactionTools registers the transaction search tool with the
// MCP server.
func RegisterTransactionTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	searchTransactionsTool := mcp.NewTool("search_transactions",
		mcp.WithDescription("Search transactions in QuickBooks including purchases, payments, and bills. Can filter by type, date range, and amount."),
		mcp.WithString("type",
			mcp.Description("Type of transaction to search (default: all)"),
			mcp.Enum("purchase", "payment", "bill", "all"),
		),
		mcp.WithString("startDate",
			mcp.Description("Start date for transaction filter (YYYY-MM-DD)"),
		),
		mcp.WithString("endDate",
			mcp.Description("End date for transaction filter (YYYY-MM-DD)"),
		),
		mcp.WithNumber("minAmount",
			mcp.Description("Minimum transaction amount"),
		),
		mcp.WithNumber("maxAmount",
			mcp.Description("Maximum transaction amount"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of transactions to return (default: 50)"),
		),
	)

	s.AddTool(searchTransactionsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Args(request)

		txnType, err := transactions.ParseType(common.StringArg(args, "type"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := sc.TransactionsClient().Search(ctx, transactions.SearchOptions{
			Type:      txnType,
			StartDate: common.StringArg(args, "startDate"),
			EndDate:   common.StringArg(args, "endDate"),
			MinAmount: common.FloatArg(args, "minAmount"),
			MaxAmount: common.FloatArg(args, "maxAmount"),
			Limit:     common.IntArg(args, "limit"),
		})
		if err != nil {
			return common.Error("search_transactions", err), nil
		}
		return common.Result("search_transactions", result), nil
	})

	return nil
}
