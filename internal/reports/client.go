package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type apiClient interface {
	Do(ctx context.Context, method, endpoint string, body any, query url.Values) (json.RawMessage, error)
}

// Client fetches and flattens QuickBooks reports.
type Client struct {
	qb apiClient
}

// NewClient creates a reports client on top of the QuickBooks client.
func NewClient(qb apiClient) *Client {
	return &Client{qb: qb}
}

// PeriodOptions bound a profit-and-loss report.
type PeriodOptions struct {
	// StartDate and EndDate in ISO YYYY-MM-DD; empty values fall back to
	// the upstream defaults (current fiscal year to date).
	StartDate string
	EndDate   string
}

// AsOfOptions select the reference date of a point-in-time report.
type AsOfOptions struct {
	AsOfDate string
}

// ProfitAndLoss fetches the income statement for the period.
func (c *Client) ProfitAndLoss(ctx context.Context, opts PeriodOptions) (*Report, error) {
	q := url.Values{}
	if opts.StartDate != "" {
		q.Set("start_date", opts.StartDate)
	}
	if opts.EndDate != "" {
		q.Set("end_date", opts.EndDate)
	}
	return c.fetch(ctx, "/reports/ProfitAndLoss", q)
}

// BalanceSheet fetches the balance sheet as of the given date.
func (c *Client) BalanceSheet(ctx context.Context, opts AsOfOptions) (*Report, error) {
	q := url.Values{}
	if opts.AsOfDate != "" {
		q.Set("date_macro", opts.AsOfDate)
	}
	return c.fetch(ctx, "/reports/BalanceSheet", q)
}

// ARAgingSummary fetches the accounts receivable aging summary.
func (c *Client) ARAgingSummary(ctx context.Context, opts AsOfOptions) (*Report, error) {
	q := url.Values{}
	if opts.AsOfDate != "" {
		q.Set("report_date", opts.AsOfDate)
	}
	return c.fetch(ctx, "/reports/AgedReceivables", q)
}

func (c *Client) fetch(ctx context.Context, endpoint string, query url.Values) (*Report, error) {
	raw, err := c.qb.Do(ctx, http.MethodGet, endpoint, nil, query)
	if err != nil {
		return nil, err
	}

	var resp reportResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return flatten(&resp), nil
}
