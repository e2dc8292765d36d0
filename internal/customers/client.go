package customers

import (
	"context"

	"github.com/teemow/quickbooks-mcp/internal/quickbooks"
)

// DefaultLimit caps customer listings when no limit is given.
const DefaultLimit = 100

// queryClient is the slice of the QuickBooks client this package needs.
type queryClient interface {
	Query(ctx context.Context, stmt string) (*quickbooks.QueryResponse, error)
}

// Client provides customer lookups.
type Client struct {
	qb queryClient
}

// NewClient creates a customers client on top of the QuickBooks client.
func NewClient(qb *quickbooks.Client) *Client {
	return &Client{qb: qb}
}

// ListOptions filter a customer listing.
type ListOptions struct {
	// Search matches DisplayName as a substring.
	Search string
	// ActiveOnly restricts the listing to active customers.
	ActiveOnly bool
	// Limit caps the result count; 0 means DefaultLimit.
	Limit int
}

// ListResult is the tool-facing result shape.
type ListResult struct {
	Customers []quickbooks.Customer `json:"customers"`
	Count     int                   `json:"count"`
}

// List returns customers matching the options.
func (c *Client) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := quickbooks.NewQuery("Customer")
	if opts.ActiveOnly {
		q.WhereBool("Active", true)
	}
	if opts.Search != "" {
		q.WhereLike("DisplayName", opts.Search)
	}
	q.MaxResults(limit)

	resp, err := c.qb.Query(ctx, q.Build())
	if err != nil {
		return nil, err
	}

	customers := resp.QueryResponse.Customer
	if customers == nil {
		customers = []quickbooks.Customer{}
	}
	return &ListResult{Customers: customers, Count: len(customers)}, nil
}

// Get returns a single customer by id, or nil when it does not exist.
func (c *Client) Get(ctx context.Context, customerID string) (*quickbooks.Customer, error) {
	stmt := quickbooks.NewQuery("Customer").WhereEq("Id", customerID).Build()
	resp, err := c.qb.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(resp.QueryResponse.Customer) == 0 {
		return nil, nil
	}
	return &resp.QueryResponse.Customer[0], nil
}
