package quickbooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teemow/quickbooks-mcp/internal/auth"
	"github.com/teemow/quickbooks-mcp/internal/config"
	"github.com/teemow/quickbooks-mcp/internal/instrumentation"
	"github.com/teemow/quickbooks-mcp/internal/logging"
)

// intuitTIDHeader carries the per-response Intuit correlation id.
const intuitTIDHeader = "intuit_tid"

// defaultTimeout bounds each outbound call so a hung upstream cannot hang a
// tool call forever.
const defaultTimeout = 30 * time.Second

// Client is the authenticated request core. Every data API call flows
// through Do: load tokens, refresh when expired, build the company-scoped
// URL, attach the bearer credential and normalize failures into typed
// errors.
//
// Concurrent calls with an expired token may each refresh and each persist
// their result; the token endpoint returns a usable token either way and
// the file is last-writer-wins. This is a known, benign race.
type Client struct {
	cfg        *config.Config
	discovery  *auth.Discovery
	store      *auth.Store
	httpClient *http.Client
	logger     logging.Logger

	baseURL string
	now     func() time.Time
}

// New creates a Client for the configured environment.
func New(cfg *config.Config, discovery *auth.Discovery, store *auth.Store, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &Client{
		cfg:        cfg,
		discovery:  discovery,
		store:      store,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
		baseURL:    cfg.Environment.APIBaseURL(),
		now:        time.Now,
	}
}

// Do performs an authenticated request against the data API and returns the
// raw JSON response body. endpoint is the path below /v3/company/{realm},
// e.g. "/query" or "/reports/ProfitAndLoss". A nil body sends no payload.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any, query url.Values) (json.RawMessage, error) {
	tokens, err := c.validTokens(ctx)
	if err != nil {
		instrumentation.APIRequests.WithLabelValues(endpoint, instrumentation.StatusError).Inc()
		return nil, err
	}

	target := fmt.Sprintf("%s/v3/company/%s%s", c.baseURL, url.PathEscape(tokens.RealmID), endpoint)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		instrumentation.APIRequests.WithLabelValues(endpoint, instrumentation.StatusError).Inc()
		return nil, fmt.Errorf("QuickBooks request failed: %w", err)
	}
	defer resp.Body.Close()

	tid := resp.Header.Get(intuitTIDHeader)
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		instrumentation.APIRequests.WithLabelValues(endpoint, instrumentation.StatusError).Inc()
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		instrumentation.APIRequests.WithLabelValues(endpoint, instrumentation.StatusError).Inc()
		apiErr := &APIError{
			Status:    resp.StatusCode,
			Body:      strings.TrimSpace(string(respBody)),
			IntuitTID: tid,
		}
		c.logger.Error("QuickBooks API call failed",
			logging.KeyEndpoint, endpoint,
			logging.KeyStatus, resp.StatusCode,
			logging.IntuitTID(tid))
		return nil, apiErr
	}

	instrumentation.APIRequests.WithLabelValues(endpoint, instrumentation.StatusSuccess).Inc()
	c.logger.Debug("QuickBooks API call",
		logging.KeyEndpoint, endpoint,
		logging.KeyStatus, resp.StatusCode,
		logging.IntuitTID(tid))

	return json.RawMessage(respBody), nil
}

// Query runs a query-language statement against /query and decodes the
// typed envelope.
func (c *Client) Query(ctx context.Context, stmt string) (*QueryResponse, error) {
	raw, err := c.Do(ctx, http.MethodGet, "/query", nil, url.Values{"query": {stmt}})
	if err != nil {
		return nil, err
	}

	var out QueryResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}
	return &out, nil
}

// validTokens loads the persisted token set and refreshes it first when it
// is expired (or within the expiry buffer).
func (c *Client) validTokens(ctx context.Context) (*auth.TokenSet, error) {
	tokens, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if tokens == nil {
		return nil, auth.ErrNotAuthenticated
	}

	if tokens.Expired(c.now()) {
		return c.refresh(ctx, tokens)
	}
	return tokens, nil
}

// refresh exchanges the stored refresh token for a new token set and
// persists it before any data call proceeds. On rejection the stale file is
// left untouched.
func (c *Client) refresh(ctx context.Context, stale *auth.TokenSet) (*auth.TokenSet, error) {
	eps, err := c.discovery.Endpoints(ctx)
	if err != nil {
		instrumentation.TokenRefreshes.WithLabelValues(instrumentation.StatusError).Inc()
		return nil, err
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {stale.RefreshToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, eps.Token, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build refresh request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		instrumentation.TokenRefreshes.WithLabelValues(instrumentation.StatusError).Inc()
		return nil, fmt.Errorf("token refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		instrumentation.TokenRefreshes.WithLabelValues(instrumentation.StatusError).Inc()
		return nil, fmt.Errorf("failed to read refresh response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		instrumentation.TokenRefreshes.WithLabelValues(instrumentation.StatusError).Inc()
		c.logger.Warn("token refresh rejected",
			logging.KeyStatus, resp.StatusCode,
			logging.KeyRealm, stale.RealmID)
		return nil, &TokenRefreshError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(respBody)),
		}
	}

	var grant struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		ExpiresIn    int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(respBody, &grant); err != nil {
		instrumentation.TokenRefreshes.WithLabelValues(instrumentation.StatusError).Inc()
		return nil, fmt.Errorf("failed to decode refresh response: %w", err)
	}

	// Realm id is fixed at first authorization and carried through every
	// refresh.
	fresh := &auth.TokenSet{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		TokenType:    grant.TokenType,
		ExpiresIn:    grant.ExpiresIn,
		RealmID:      stale.RealmID,
	}
	fresh.SetExpiry(c.now().Add(time.Duration(grant.ExpiresIn) * time.Second))

	if err := c.store.Save(fresh); err != nil {
		instrumentation.TokenRefreshes.WithLabelValues(instrumentation.StatusError).Inc()
		return nil, fmt.Errorf("failed to persist refreshed tokens: %w", err)
	}

	instrumentation.TokenRefreshes.WithLabelValues(instrumentation.StatusSuccess).Inc()
	c.logger.Info("access token refreshed",
		logging.KeyRealm, fresh.RealmID,
		"expires_at", fresh.Expiry())

	return fresh, nil
}
