package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/quickbooks-mcp/internal/config"
)

// freePort reserves a listener port for the callback server.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

// testDiscovery serves a discovery document pointing at the given token
// endpoint.
func testDiscovery(t *testing.T, tokenEndpoint string) *Discovery {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"authorization_endpoint": "https://appcenter.example.com/connect/oauth2",
			"token_endpoint": %q,
			"revocation_endpoint": "https://developer.example.com/revoke"
		}`, tokenEndpoint)
	}))
	t.Cleanup(srv.Close)
	return NewDiscovery(srv.URL, nil)
}

func testFlow(t *testing.T, tokenEndpoint string) (*Flow, *Store) {
	t.Helper()

	port := freePort(t)
	cfg := &config.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  fmt.Sprintf("http://127.0.0.1:%d/callback", port),
		Environment:  config.Sandbox,
	}

	store := testStore(t)
	flow := NewFlow(cfg, testDiscovery(t, tokenEndpoint), store, nil)
	return flow, store
}

// redirectTo simulates the authorization server redirecting the operator's
// browser back to the local listener.
func redirectTo(t *testing.T, flow *Flow, params func(authURL *url.URL) url.Values) func(string) error {
	t.Helper()
	return func(authURL string) error {
		parsed, err := url.Parse(authURL)
		if err != nil {
			return err
		}
		go func() {
			callback := flow.Config.RedirectURI + "?" + params(parsed).Encode()
			// The listener may not be fully ready; retry briefly.
			for i := 0; i < 50; i++ {
				resp, err := http.Get(callback)
				if err == nil {
					resp.Body.Close()
					return
				}
				time.Sleep(20 * time.Millisecond)
			}
		}()
		return nil
	}
}

func TestFlowSuccess(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"access_token": "new-access",
			"refresh_token": "new-refresh",
			"token_type": "bearer",
			"expires_in": 3600
		}`)
	}))
	defer tokenSrv.Close()

	flow, store := testFlow(t, tokenSrv.URL)
	flow.OpenURL = redirectTo(t, flow, func(authURL *url.URL) url.Values {
		assert.Equal(t, "code", authURL.Query().Get("response_type"))
		assert.Equal(t, Scope, authURL.Query().Get("scope"))
		assert.NotEmpty(t, authURL.Query().Get("state"))

		return url.Values{
			"code":    {"the-code"},
			"realmId": {"9341453908753425"},
			"state":   {authURL.Query().Get("state")},
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tokens, err := flow.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-access", tokens.AccessToken)
	assert.Equal(t, "new-refresh", tokens.RefreshToken)
	assert.Equal(t, "9341453908753425", tokens.RealmID)
	assert.False(t, tokens.Expired(time.Now()))

	persisted, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, tokens, persisted)
}

func TestFlowCallbackError(t *testing.T) {
	flow, store := testFlow(t, "http://unused.invalid/token")
	flow.OpenURL = redirectTo(t, flow, func(*url.URL) url.Values {
		return url.Values{"error": {"access_denied"}}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := flow.Run(ctx)
	var authErr *AuthorizationError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "access_denied", authErr.Reason)

	// Nothing was persisted.
	tokens, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, tokens)
}

func TestFlowMissingCodeOrRealm(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
	}{
		{
			name:   "missing realm",
			params: url.Values{"code": {"the-code"}},
		},
		{
			name:   "missing code",
			params: url.Values{"realmId": {"9341453908753425"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow, store := testFlow(t, "http://unused.invalid/token")
			flow.OpenURL = redirectTo(t, flow, func(*url.URL) url.Values {
				return tt.params
			})

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			_, err := flow.Run(ctx)
			var authErr *AuthorizationError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, "missing code or realm", authErr.Reason)

			tokens, err := store.Load()
			require.NoError(t, err)
			assert.Nil(t, tokens)
		})
	}
}

func TestFlowStateMismatch(t *testing.T) {
	flow, store := testFlow(t, "http://unused.invalid/token")
	flow.OpenURL = redirectTo(t, flow, func(*url.URL) url.Values {
		return url.Values{
			"code":    {"the-code"},
			"realmId": {"9341453908753425"},
			"state":   {"forged"},
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := flow.Run(ctx)
	var authErr *AuthorizationError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "state mismatch", authErr.Reason)

	tokens, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, tokens)
}

func TestFlowExchangeRejected(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_grant"}`)
	}))
	defer tokenSrv.Close()

	flow, store := testFlow(t, tokenSrv.URL)
	flow.OpenURL = redirectTo(t, flow, func(authURL *url.URL) url.Values {
		return url.Values{
			"code":    {"bad-code"},
			"realmId": {"9341453908753425"},
			"state":   {authURL.Query().Get("state")},
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := flow.Run(ctx)
	var authErr *AuthorizationError
	require.True(t, errors.As(err, &authErr))
	assert.Contains(t, authErr.Reason, "invalid_grant")

	tokens, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, tokens)
}

func TestRevokeClearsTokens(t *testing.T) {
	var revoked bool
	revokeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh-456", r.PostForm.Get("token"))
		revoked = true
	}))
	defer revokeSrv.Close()

	discoverySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"token_endpoint": "http://unused.invalid/token", "revocation_endpoint": %q}`, revokeSrv.URL)
	}))
	defer discoverySrv.Close()

	store := testStore(t)
	tokens := &TokenSet{AccessToken: "a", RefreshToken: "refresh-456", RealmID: "1"}
	tokens.SetExpiry(time.Now().Add(time.Hour))
	require.NoError(t, store.Save(tokens))

	cfg := &config.Config{ClientID: "id", ClientSecret: "secret", Environment: config.Sandbox}
	err := Revoke(context.Background(), cfg, NewDiscovery(discoverySrv.URL, nil), store, nil)
	require.NoError(t, err)
	assert.True(t, revoked)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
