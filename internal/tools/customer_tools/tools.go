package customer_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/quickbooks-mcp/internal/customers"
	"github.com/teemow/quickbooks-mcp/internal/server"
	"github.com/teemow/quickbooks-mcp/internal/tools/common"
)

// RegisterCustomerTools registers the customer tools with the MCP server.
func RegisterCustomerTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listCustomersTool := mcp.NewTool("list_customers",
		mcp.WithDescription("List or search customers in QuickBooks. Returns customer names, contact info, and balances."),
		mcp.WithString("search",
			mcp.Description("Search term to filter customers by name"),
		),
		mcp.WithBoolean("activeOnly",
			mcp.Description("Only return active customers (default: true)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of customers to return (default: 100)"),
		),
	)

	s.AddTool(listCustomersTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Args(request)

		result, err := sc.CustomersClient().List(ctx, customers.ListOptions{
			Search:     common.StringArg(args, "search"),
			ActiveOnly: common.BoolArg(args, "activeOnly", true),
			Limit:      common.IntArg(args, "limit"),
		})
		if err != nil {
			return common.Error("list_customers", err), nil
		}
		return common.Result("list_customers", result), nil
	})

	getCustomerTool := mcp.NewTool("get_customer",
		mcp.WithDescription("Get detailed information about a specific customer by their ID"),
		mcp.WithString("customerId",
			mcp.Required(),
			mcp.Description("The QuickBooks customer ID"),
		),
	)

	s.AddTool(getCustomerTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := common.Args(request)

		customerID := common.StringArg(args, "customerId")
		if customerID == "" {
			return mcp.NewToolResultError("customerId is required"), nil
		}

		customer, err := sc.CustomersClient().Get(ctx, customerID)
		if err != nil {
			return common.Error("get_customer", err), nil
		}
		return common.Result("get_customer", customer), nil
	})

	return nil
}
