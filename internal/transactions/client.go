package transactions

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/teemow/quickbooks-mcp/internal/quickbooks"
)

// DefaultLimit caps transaction searches when no limit is given.
const DefaultLimit = 50

// Type selects which transaction entities to search.
type Type string

const (
	TypeAll      Type = "all"
	TypePurchase Type = "purchase"
	TypePayment  Type = "payment"
	TypeBill     Type = "bill"
)

// ParseType validates a type argument, defaulting empty to "all".
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case "", TypeAll:
		return TypeAll, nil
	case TypePurchase, TypePayment, TypeBill:
		return Type(s), nil
	default:
		return "", fmt.Errorf("invalid transaction type %q (must be purchase, payment, bill or all)", s)
	}
}

type queryClient interface {
	Query(ctx context.Context, stmt string) (*quickbooks.QueryResponse, error)
}

// Client searches transactions across entity kinds.
type Client struct {
	qb queryClient
}

// NewClient creates a transactions client on top of the QuickBooks client.
func NewClient(qb *quickbooks.Client) *Client {
	return &Client{qb: qb}
}

// SearchOptions filter a transaction search. Amount bounds are pointers so
// zero amounts stay expressible.
type SearchOptions struct {
	Type      Type
	StartDate string
	EndDate   string
	MinAmount *float64
	MaxAmount *float64
	Limit     int
}

// Transaction is one search hit, tagged with its originating entity kind.
type Transaction struct {
	Type Type `json:"type"`
	Data any  `json:"data"`

	txnDate string
}

// SearchResult is the tool-facing result shape. Count reflects the merged
// set before truncation to the limit.
type SearchResult struct {
	Transactions []Transaction `json:"transactions"`
	Count        int           `json:"count"`
}

// Search queries the selected entity kinds concurrently, merges the results,
// sorts by transaction date descending and truncates to the limit.
//
// The limit is applied per entity query and again to the merged set, so the
// result is bounded but a single kind can crowd out the others when totals
// exceed the limit. This mirrors the upstream behavior.
func (c *Client) Search(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	if opts.Type == "" {
		opts.Type = TypeAll
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	type entityQuery struct {
		entity string
		kind   Type
	}
	var queries []entityQuery
	if opts.Type == TypeAll || opts.Type == TypePurchase {
		queries = append(queries, entityQuery{"Purchase", TypePurchase})
	}
	if opts.Type == TypeAll || opts.Type == TypePayment {
		queries = append(queries, entityQuery{"Payment", TypePayment})
	}
	if opts.Type == TypeAll || opts.Type == TypeBill {
		queries = append(queries, entityQuery{"Bill", TypeBill})
	}

	var (
		mu           sync.Mutex
		wg           sync.WaitGroup
		transactions []Transaction
		firstErr     error
	)

	for _, eq := range queries {
		wg.Add(1)
		go func(eq entityQuery) {
			defer wg.Done()

			resp, err := c.qb.Query(ctx, buildQuery(eq.entity, opts))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			transactions = append(transactions, collect(eq.kind, &resp.QueryResponse)...)
		}(eq)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	// ISO dates compare correctly as strings.
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].txnDate > transactions[j].txnDate
	})

	count := len(transactions)
	if len(transactions) > opts.Limit {
		transactions = transactions[:opts.Limit]
	}
	if transactions == nil {
		transactions = []Transaction{}
	}

	return &SearchResult{Transactions: transactions, Count: count}, nil
}

func buildQuery(entity string, opts SearchOptions) string {
	q := quickbooks.NewQuery(entity)
	if opts.StartDate != "" {
		q.WhereGTE("TxnDate", opts.StartDate)
	}
	if opts.EndDate != "" {
		q.WhereLTE("TxnDate", opts.EndDate)
	}
	if opts.MinAmount != nil {
		q.WhereAmountGTE("TotalAmt", *opts.MinAmount)
	}
	if opts.MaxAmount != nil {
		q.WhereAmountLTE("TotalAmt", *opts.MaxAmount)
	}
	return q.OrderByDesc("TxnDate").MaxResults(opts.Limit).Build()
}

func collect(kind Type, result *quickbooks.QueryResult) []Transaction {
	var out []Transaction
	switch kind {
	case TypePurchase:
		for _, p := range result.Purchase {
			out = append(out, Transaction{Type: kind, Data: p, txnDate: p.TxnDate})
		}
	case TypePayment:
		for _, p := range result.Payment {
			out = append(out, Transaction{Type: kind, Data: p, txnDate: p.TxnDate})
		}
	case TypeBill:
		for _, b := range result.Bill {
			out = append(out, Transaction{Type: kind, Data: b, txnDate: b.TxnDate})
		}
	}
	return out
}
