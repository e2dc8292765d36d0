package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/teemow/quickbooks-mcp/internal/config"
)

// Revoke asks the authorization server to revoke the stored refresh token
// and clears the local token file. A missing token set is not an error; the
// file is cleared either way.
func Revoke(ctx context.Context, cfg *config.Config, discovery *Discovery, store *Store, httpClient *http.Client) error {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	tokens, err := store.Load()
	if err != nil {
		return err
	}
	if tokens == nil {
		return store.Clear()
	}

	eps, err := discovery.Endpoints(ctx)
	if err != nil {
		return err
	}

	form := url.Values{"token": {tokens.RefreshToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, eps.Revocation, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build revocation request: %w", err)
	}
	req.SetBasicAuth(cfg.ClientID, cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("revocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("revocation rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return store.Clear()
}
