package invoices

import (
	"context"
	"fmt"
	"time"

	"github.com/teemow/quickbooks-mcp/internal/quickbooks"
)

// DefaultLimit caps invoice listings when no limit is given.
const DefaultLimit = 100

// Status filters a listing by payment state.
type Status string

const (
	StatusAll     Status = "all"
	StatusPaid    Status = "paid"
	StatusUnpaid  Status = "unpaid"
	StatusOverdue Status = "overdue"
)

// ParseStatus validates a status argument, defaulting empty to "all".
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusPaid, StatusUnpaid, StatusOverdue:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid status %q (must be paid, unpaid, overdue or all)", s)
	}
}

type queryClient interface {
	Query(ctx context.Context, stmt string) (*quickbooks.QueryResponse, error)
}

// Client provides invoice lookups.
type Client struct {
	qb  queryClient
	now func() time.Time
}

// NewClient creates an invoices client on top of the QuickBooks client.
func NewClient(qb *quickbooks.Client) *Client {
	return &Client{qb: qb, now: time.Now}
}

// ListOptions filter an invoice listing.
type ListOptions struct {
	CustomerID string
	Status     Status
	// StartDate and EndDate bound TxnDate, ISO YYYY-MM-DD.
	StartDate string
	EndDate   string
	Limit     int
}

// ListResult is the tool-facing result shape.
type ListResult struct {
	Invoices []quickbooks.Invoice `json:"invoices"`
	Count    int                  `json:"count"`
}

// List returns invoices matching the options, newest first.
//
// The overdue status cannot be expressed in the query language (it has no
// current-date comparison), so overdue filtering happens in memory after
// retrieval.
func (c *Client) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	status := opts.Status
	if status == "" {
		status = StatusAll
	}

	q := quickbooks.NewQuery("Invoice")
	if opts.CustomerID != "" {
		q.WhereEq("CustomerRef", opts.CustomerID)
	}
	if opts.StartDate != "" {
		q.WhereGTE("TxnDate", opts.StartDate)
	}
	if opts.EndDate != "" {
		q.WhereLTE("TxnDate", opts.EndDate)
	}
	switch status {
	case StatusPaid:
		q.WhereEq("Balance", "0")
	case StatusUnpaid:
		q.WhereGT("Balance", "0")
	}
	q.OrderByDesc("TxnDate").MaxResults(limit)

	resp, err := c.qb.Query(ctx, q.Build())
	if err != nil {
		return nil, err
	}

	invoices := resp.QueryResponse.Invoice
	if status == StatusOverdue {
		today := c.now().Format("2006-01-02")
		overdue := invoices[:0]
		for _, inv := range invoices {
			if inv.Balance > 0 && inv.DueDate < today {
				overdue = append(overdue, inv)
			}
		}
		invoices = overdue
	}
	if invoices == nil {
		invoices = []quickbooks.Invoice{}
	}

	return &ListResult{Invoices: invoices, Count: len(invoices)}, nil
}
