package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/quickbooks-mcp/internal/quickbooks"
)

type stubQuery struct {
	stmt string
	resp *quickbooks.QueryResponse
	err  error
}

func (s *stubQuery) Query(_ context.Context, stmt string) (*quickbooks.QueryResponse, error) {
	s.stmt = stmt
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func TestListStatements(t *testing.T) {
	tests := []struct {
		name string
		opts ListOptions
		want string
	}{
		{
			name: "defaults",
			opts: ListOptions{},
			want: "SELECT * FROM Account",
		},
		{
			name: "active with type",
			opts: ListOptions{ActiveOnly: true, AccountType: "Bank"},
			want: "SELECT * FROM Account WHERE Active = true AND AccountType = 'Bank'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubQuery{resp: &quickbooks.QueryResponse{}}
			c := &Client{qb: stub}

			_, err := c.List(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stub.stmt)
		})
	}
}

func TestBalancesGroupsByClassification(t *testing.T) {
	stub := &stubQuery{resp: &quickbooks.QueryResponse{
		QueryResponse: quickbooks.QueryResult{
			Account: []quickbooks.Account{
				{Name: "Checking", AccountType: "Bank", Classification: "Asset", CurrentBalance: 100},
				{Name: "Credit Card", AccountType: "Credit Card", Classification: "Liability", CurrentBalance: 40},
				{Name: "Sales", AccountType: "Income", Classification: "Revenue", CurrentBalance: 200},
			},
		},
	}}
	c := &Client{qb: stub}

	result, err := c.Balances(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.Assets)
	assert.Equal(t, 40.0, result.Liabilities)
	assert.Equal(t, 200.0, result.Income)
	assert.Equal(t, 0.0, result.Equity)
	assert.Equal(t, 0.0, result.Expenses)

	require.Len(t, result.Accounts, 3)
	assert.Equal(t, AccountSummary{Name: "Checking", Type: "Bank", Balance: 100}, result.Accounts[0])

	// Only active accounts feed the summary.
	assert.Equal(t, "SELECT * FROM Account WHERE Active = true", stub.stmt)
}

func TestBalancesUnknownClassification(t *testing.T) {
	stub := &stubQuery{resp: &quickbooks.QueryResponse{
		QueryResponse: quickbooks.QueryResult{
			Account: []quickbooks.Account{
				{Name: "Odd", AccountType: "Other", Classification: "", CurrentBalance: 7},
			},
		},
	}}
	c := &Client{qb: stub}

	result, err := c.Balances(context.Background())
	require.NoError(t, err)

	// Unclassified balances appear in the account rows but no group.
	assert.Equal(t, 0.0, result.Assets+result.Liabilities+result.Equity+result.Income+result.Expenses)
	require.Len(t, result.Accounts, 1)
	assert.Equal(t, 7.0, result.Accounts[0].Balance)
}
