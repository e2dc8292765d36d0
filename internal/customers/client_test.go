package customers

import (
	"context"
	"errors"
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
			want: "SELECT * FROM Customer MAXRESULTS 100",
		},
		{
			name: "active only",
			opts: ListOptions{ActiveOnly: true},
			want: "SELECT * FROM Customer WHERE Active = true MAXRESULTS 100",
		},
		{
			name: "search escapes the value",
			opts: ListOptions{Search: "O'Brien", Limit: 5},
			want: `SELECT * FROM Customer WHERE DisplayName LIKE '%O\'Brien%' MAXRESULTS 5`,
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

func TestListReturnsCustomers(t *testing.T) {
	stub := &stubQuery{resp: &quickbooks.QueryResponse{
		QueryResponse: quickbooks.QueryResult{
			Customer: []quickbooks.Customer{
				{ID: "1", DisplayName: "Acme"},
				{ID: "2", DisplayName: "Globex"},
			},
		},
	}}
	c := &Client{qb: stub}

	result, err := c.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, "Acme", result.Customers[0].DisplayName)
}

func TestListPropagatesErrors(t *testing.T) {
	wantErr := errors.New("boom")
	c := &Client{qb: &stubQuery{err: wantErr}}

	_, err := c.List(context.Background(), ListOptions{})
	assert.ErrorIs(t, err, wantErr)
}

func TestGet(t *testing.T) {
	stub := &stubQuery{resp: &quickbooks.QueryResponse{
		QueryResponse: quickbooks.QueryResult{
			Customer: []quickbooks.Customer{{ID: "42", DisplayName: "Acme"}},
		},
	}}
	c := &Client{qb: stub}

	customer, err := c.Get(context.Background(), "42")
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, "Acme", customer.DisplayName)
	assert.Equal(t, "SELECT * FROM Customer WHERE Id = '42'", stub.stmt)
}

func TestGetNotFound(t *testing.T) {
	c := &Client{qb: &stubQuery{resp: &quickbooks.QueryResponse{}}}

	customer, err := c.Get(context.Background(), "999")
	require.NoError(t, err)
	assert.Nil(t, customer)
}
