package server

import (
	"context"
	"sync"

	"github.com/teemow/quickbooks-mcp/internal/accounts"
	"github.com/teemow/quickbooks-mcp/internal/auth"
	"github.com/teemow/quickbooks-mcp/internal/config"
	"github.com/teemow/quickbooks-mcp/internal/customers"
	"github.com/teemow/quickbooks-mcp/internal/invoices"
	"github.com/teemow/quickbooks-mcp/internal/logging"
	"github.com/teemow/quickbooks-mcp/internal/quickbooks"
	"github.com/teemow/quickbooks-mcp/internal/reports"
	"github.com/teemow/quickbooks-mcp/internal/transactions"
)

// ServerContext holds the shared state for the MCP server: configuration,
// the discovery cache, the token store and the lazily built domain clients.
// It is the explicit owner of what the process treats as process-wide state.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	config    *config.Config
	discovery *auth.Discovery
	store     *auth.Store
	logger    logging.Logger

	mu           sync.Mutex
	qb           *quickbooks.Client
	customers    *customers.Client
	invoices     *invoices.Client
	accounts     *accounts.Client
	reports      *reports.Client
	transactions *transactions.Client
	shutdown     bool
}

// NewServerContext creates a server context. The token store path defaults
// to the user cache directory when tokenFile is empty.
func NewServerContext(ctx context.Context, cfg *config.Config, tokenFile string, logger logging.Logger) (*ServerContext, error) {
	if tokenFile == "" {
		var err error
		tokenFile, err = auth.DefaultTokenFile()
		if err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:       shutdownCtx,
		cancel:    cancel,
		config:    cfg,
		discovery: auth.NewDiscovery(cfg.Environment.DiscoveryURL(), nil),
		store:     auth.NewStore(tokenFile),
		logger:    logger,
	}, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the loaded configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.config
}

// TokenStore returns the token store.
func (sc *ServerContext) TokenStore() *auth.Store {
	return sc.store
}

// Discovery returns the endpoint discovery cache.
func (sc *ServerContext) Discovery() *auth.Discovery {
	return sc.discovery
}

// Logger returns the context logger.
func (sc *ServerContext) Logger() logging.Logger {
	return sc.logger
}

// QuickBooksClient returns the shared authenticated client, building it on
// first use.
func (sc *ServerContext) QuickBooksClient() *quickbooks.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.quickbooksClientLocked()
}

func (sc *ServerContext) quickbooksClientLocked() *quickbooks.Client {
	if sc.qb == nil {
		sc.qb = quickbooks.New(sc.config, sc.discovery, sc.store, sc.logger)
	}
	return sc.qb
}

// CustomersClient returns the customers client.
func (sc *ServerContext) CustomersClient() *customers.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.customers == nil {
		sc.customers = customers.NewClient(sc.quickbooksClientLocked())
	}
	return sc.customers
}

// InvoicesClient returns the invoices client.
func (sc *ServerContext) InvoicesClient() *invoices.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.invoices == nil {
		sc.invoices = invoices.NewClient(sc.quickbooksClientLocked())
	}
	return sc.invoices
}

// AccountsClient returns the accounts client.
func (sc *ServerContext) AccountsClient() *accounts.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.accounts == nil {
		sc.accounts = accounts.NewClient(sc.quickbooksClientLocked())
	}
	return sc.accounts
}

// ReportsClient returns the reports client.
func (sc *ServerContext) ReportsClient() *reports.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.reports == nil {
		sc.reports = reports.NewClient(sc.quickbooksClientLocked())
	}
	return sc.reports
}

// TransactionsClient returns the transactions client.
func (sc *ServerContext) TransactionsClient() *transactions.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.transactions == nil {
		sc.transactions = transactions.NewClient(sc.quickbooksClientLocked())
	}
	return sc.transactions
}

// Shutdown cancels the server context. It is safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.shutdown {
		return nil
	}
	sc.shutdown = true
	sc.cancel()
	return nil
}
