package auth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/teemow/quickbooks-mcp/internal/config"
	"github.com/teemow/quickbooks-mcp/internal/logging"
)

// Scope is the QuickBooks accounting scope requested during authorization.
const Scope = "com.intuit.quickbooks.accounting"

// Flow runs the one-shot interactive authorization: build the authorization
// URL, receive the redirect on a local listener, exchange the code for
// tokens, persist them. Exactly one callback is processed; the flow returns
// the token set and leaves process-exit decisions to the caller.
type Flow struct {
	Config    *config.Config
	Discovery *Discovery
	Store     *Store
	Logger    logging.Logger

	// OpenURL presents the authorization URL to the operator.
	// Defaults to opening the system browser.
	OpenURL func(url string) error

	now func() time.Time
}

// NewFlow creates an authorization flow with default collaborators.
func NewFlow(cfg *config.Config, discovery *Discovery, store *Store, logger logging.Logger) *Flow {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &Flow{
		Config:    cfg,
		Discovery: discovery,
		Store:     store,
		Logger:    logger,
		OpenURL:   OpenBrowser,
		now:       time.Now,
	}
}

type flowResult struct {
	tokens *TokenSet
	err    error
}

// Run executes the flow. It blocks until the callback has been handled or
// ctx is cancelled.
func (f *Flow) Run(ctx context.Context) (*TokenSet, error) {
	eps, err := f.Discovery.Endpoints(ctx)
	if err != nil {
		return nil, err
	}

	oauthCfg := &oauth2.Config{
		ClientID:     f.Config.ClientID,
		ClientSecret: f.Config.ClientSecret,
		RedirectURL:  f.Config.RedirectURI,
		Scopes:       []string{Scope},
		Endpoint: oauth2.Endpoint{
			AuthURL:   eps.Authorization,
			TokenURL:  eps.Token,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	redirect, err := url.Parse(f.Config.RedirectURI)
	if err != nil {
		return nil, &AuthorizationError{Reason: "invalid redirect URI", Err: err}
	}
	callbackPath := redirect.Path
	if callbackPath == "" {
		callbackPath = "/"
	}

	state := uuid.NewString()
	authURL := oauthCfg.AuthCodeURL(state)

	listener, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return nil, &AuthorizationError{Reason: fmt.Sprintf("cannot listen on %s", redirect.Host), Err: err}
	}

	resultCh := make(chan flowResult, 1)
	var once sync.Once

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() {
			tokens, err := f.handleCallback(r.Context(), oauthCfg, state, w, r)
			resultCh <- flowResult{tokens: tokens, err: err}
		})
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	f.Logger.Info("waiting for QuickBooks authorization",
		logging.KeyOperation, "authorize",
		"auth_url", authURL,
		"listen", redirect.Host)

	if f.OpenURL != nil {
		if err := f.OpenURL(authURL); err != nil {
			f.Logger.Warn("could not open browser, visit the URL manually",
				logging.Err(err), "auth_url", authURL)
		}
	}

	select {
	case res := <-resultCh:
		return res.tokens, res.err
	case err := <-serveErr:
		return nil, &AuthorizationError{Reason: "callback listener failed", Err: err}
	case <-ctx.Done():
		return nil, &AuthorizationError{Reason: "authorization cancelled", Err: ctx.Err()}
	}
}

// handleCallback processes the single redirect from the authorization
// server, rendering a short HTML page for the operator's browser.
func (f *Flow) handleCallback(ctx context.Context, oauthCfg *oauth2.Config, wantState string, w http.ResponseWriter, r *http.Request) (*TokenSet, error) {
	q := r.URL.Query()

	if errParam := q.Get("error"); errParam != "" {
		writePage(w, "Authorization Failed", errParam)
		return nil, &AuthorizationError{Reason: errParam}
	}

	code := q.Get("code")
	realmID := q.Get("realmId")
	if code == "" || realmID == "" {
		writePage(w, "Authorization Failed", "missing code or realm")
		return nil, &AuthorizationError{Reason: "missing code or realm"}
	}

	if q.Get("state") != wantState {
		writePage(w, "Authorization Failed", "state mismatch")
		return nil, &AuthorizationError{Reason: "state mismatch"}
	}

	tok, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		reason := "token exchange failed"
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			reason = fmt.Sprintf("token exchange failed: %s", string(rerr.Body))
		}
		writePage(w, "Token Exchange Failed", reason)
		return nil, &AuthorizationError{Reason: reason, Err: err}
	}

	now := f.now()
	tokens := &TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresIn:    tok.ExpiresIn,
		RealmID:      realmID,
	}
	tokens.SetExpiry(now.Add(time.Duration(tok.ExpiresIn) * time.Second))

	if err := f.Store.Save(tokens); err != nil {
		writePage(w, "Authorization Failed", "could not persist tokens")
		return nil, &AuthorizationError{Reason: "could not persist tokens", Err: err}
	}

	writePage(w, "Authorization Successful!",
		fmt.Sprintf("Realm ID: %s. Tokens have been saved, you can close this window. The MCP server is now ready to use.", realmID))

	f.Logger.Info("authorization successful",
		logging.KeyOperation, "authorize",
		logging.KeyRealm, realmID,
		"token_file", f.Store.Path())

	return tokens, nil
}

func writePage(w http.ResponseWriter, title, detail string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<h1>%s</h1><p>%s</p>", html.EscapeString(title), html.EscapeString(detail))
}
