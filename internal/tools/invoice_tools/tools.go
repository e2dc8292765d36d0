package invoice_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/quickbooks-mcp/internal/invoices"
	"github.com/teemow/quickbooks-mcp/internal/server"
	"github.com/teemow/quickbooks-mcp/internal/tools/common"
)

// RegisterInvoiceTools registers the invoice tools with the MCP server.
func RegisterInvoiceTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listInvoicesTool := mcp.NewTool("list_invoices",
		mcp.WithDescription("List or search invoices in QuickBooks. Can filter by customer, status (paid/unpaid/overdue), and date range."),
		mcp.WithString("customerId",
			mcp.Description("Filter invoices by customer ID"),
		),
		mcp.WithString("status",
			mcp.Description("Filter by payment status (default: all)"),
			mcp.Enum("paid", "unpaid", "overdue", "all"),
		),
		mcp.WithString("startDate",
			mcp.Description("Start date for invoice filter (YYYY-MM-DD)"),
		),
		mcp.WithString("endDate",
			mcp.Description("End date for invoice filter (YYYY-MM-DD)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of invoices to return (default: 100)"),
		),
	)

	s.AddTool(listInvoicesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Args(request)

		status, err := invoices.ParseStatus(common.StringArg(args, "status"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := sc.InvoicesClient().List(ctx, invoices.ListOptions{
			CustomerID: common.StringArg(args, "customerId"),
			Status:     status,
			StartDate:  common.StringArg(args, "startDate"),
			EndDate:    common.StringArg(args, "endDate"),
			Limit:      common.IntArg(args, "limit"),
		})
		if err != nil {
			return common.Error("list_invoices", err), nil
		}
		return common.Result("list_invoices", result), nil
	})

	return nil
}
