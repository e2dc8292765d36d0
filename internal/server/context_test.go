package server

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/quickbooks-mcp/internal/config"
)

func testServerContext(t *testing.T) *ServerContext {
	t.Helper()
	cfg := &config.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:3000/callback",
		Environment:  config.Sandbox,
	}
	sc, err := NewServerContext(context.Background(), cfg, filepath.Join(t.TempDir(), "tokens.json"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestServerContextAccessors(t *testing.T) {
	sc := testServerContext(t)

	assert.NotNil(t, sc.Config())
	assert.NotNil(t, sc.TokenStore())
	assert.NotNil(t, sc.Discovery())
	assert.NotNil(t, sc.Logger())
	assert.NotNil(t, sc.Context())
}

func TestServerContextClientsAreShared(t *testing.T) {
	sc := testServerContext(t)

	assert.Same(t, sc.QuickBooksClient(), sc.QuickBooksClient())
	assert.Same(t, sc.CustomersClient(), sc.CustomersClient())
	assert.Same(t, sc.InvoicesClient(), sc.InvoicesClient())
	assert.Same(t, sc.AccountsClient(), sc.AccountsClient())
	assert.Same(t, sc.ReportsClient(), sc.ReportsClient())
	assert.Same(t, sc.TransactionsClient(), sc.TransactionsClient())
}

func TestServerContextShutdown(t *testing.T) {
	sc := testServerContext(t)

	require.NoError(t, sc.Shutdown())
	require.NoError(t, sc.Shutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Error("context not canceled after Shutdown")
	}
}
