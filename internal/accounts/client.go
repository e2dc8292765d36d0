package accounts

import (
	"context"
	"strings"

	"github.com/teemow/quickbooks-mcp/internal/quickbooks"
)

type queryClient interface {
	Query(ctx context.Context, stmt string) (*quickbooks.QueryResponse, error)
}

// Client provides chart-of-accounts lookups.
type Client struct {
	qb queryClient
}

// NewClient creates an accounts client on top of the QuickBooks client.
func NewClient(qb *quickbooks.Client) *Client {
	return &Client{qb: qb}
}

// ListOptions filter an account listing.
type ListOptions struct {
	// AccountType filters by type, e.g. "Bank" or "Accounts Receivable".
	AccountType string
	// ActiveOnly restricts the listing to active accounts.
	ActiveOnly bool
}

// ListResult is the tool-facing result shape.
type ListResult struct {
	Accounts []quickbooks.Account `json:"accounts"`
	Count    int                  `json:"count"`
}

// List returns chart-of-accounts entries matching the options.
func (c *Client) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	q := quickbooks.NewQuery("Account")
	if opts.ActiveOnly {
		q.WhereBool("Active", true)
	}
	if opts.AccountType != "" {
		q.WhereEq("AccountType", opts.AccountType)
	}

	resp, err := c.qb.Query(ctx, q.Build())
	if err != nil {
		return nil, err
	}

	accounts := resp.QueryResponse.Account
	if accounts == nil {
		accounts = []quickbooks.Account{}
	}
	return &ListResult{Accounts: accounts, Count: len(accounts)}, nil
}

// AccountSummary is one row of the balance summary.
type AccountSummary struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Balance float64 `json:"balance"`
}

// BalancesResult groups current balances by account classification.
type BalancesResult struct {
	Assets      float64          `json:"assets"`
	Liabilities float64          `json:"liabilities"`
	Equity      float64          `json:"equity"`
	Income      float64          `json:"income"`
	Expenses    float64          `json:"expenses"`
	Accounts    []AccountSummary `json:"accounts"`
}

// Balances sums the current balance of every active account by its
// classification. Revenue classifications count as income.
func (c *Client) Balances(ctx context.Context) (*BalancesResult, error) {
	list, err := c.List(ctx, ListOptions{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	result := &BalancesResult{Accounts: make([]AccountSummary, 0, len(list.Accounts))}
	for _, acc := range list.Accounts {
		switch strings.ToLower(acc.Classification) {
		case "asset":
			result.Assets += acc.CurrentBalance
		case "liability":
			result.Liabilities += acc.CurrentBalance
		case "equity":
			result.Equity += acc.CurrentBalance
		case "revenue":
			result.Income += acc.CurrentBalance
		case "expense":
			result.Expenses += acc.CurrentBalance
		}

		result.Accounts = append(result.Accounts, AccountSummary{
			Name:    acc.Name,
			Type:    acc.AccountType,
			Balance: acc.CurrentBalance,
		})
	}

	return result, nil
}
