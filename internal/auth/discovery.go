package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Endpoints holds the OAuth endpoints resolved from the discovery document.
type Endpoints struct {
	Authorization string
	Token         string
	Revocation    string
}

// discoveryDocument mirrors the fields of Intuit's OpenID configuration that
// the server uses. Issuer, userinfo and jwks fields are carried but unused.
type discoveryDocument struct {
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserinfoEndpoint      string `json:"userinfo_endpoint"`
	RevocationEndpoint    string `json:"revocation_endpoint"`
	JWKSURI               string `json:"jwks_uri"`
}

// Discovery resolves and caches the OAuth endpoints from an OpenID discovery
// document. The document is fetched once per process and reused until
// Reset is called. There is no retry policy; a fetch failure propagates to
// the caller and the next call fetches again.
type Discovery struct {
	url        string
	httpClient *http.Client

	mu  sync.Mutex
	doc *discoveryDocument
}

// NewDiscovery creates a Discovery for the given well-known URL.
// A nil httpClient falls back to http.DefaultClient.
func NewDiscovery(url string, httpClient *http.Client) *Discovery {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Discovery{url: url, httpClient: httpClient}
}

// Endpoints returns the resolved OAuth endpoints, fetching the discovery
// document on first use.
func (d *Discovery) Endpoints(ctx context.Context) (Endpoints, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.doc == nil {
		doc, err := d.fetch(ctx)
		if err != nil {
			return Endpoints{}, err
		}
		d.doc = doc
	}

	return Endpoints{
		Authorization: d.doc.AuthorizationEndpoint,
		Token:         d.doc.TokenEndpoint,
		Revocation:    d.doc.RevocationEndpoint,
	}, nil
}

// Reset clears the cached document so the next call refetches.
func (d *Discovery) Reset() {
	d.mu.Lock()
	d.doc = nil
	d.mu.Unlock()
}

func (d *Discovery) fetch(ctx context.Context) (*discoveryDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return nil, &DiscoveryError{URL: d.url, Err: err}
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, &DiscoveryError{URL: d.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &DiscoveryError{URL: d.url, Status: resp.StatusCode}
	}

	var doc discoveryDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &DiscoveryError{URL: d.url, Err: fmt.Errorf("invalid discovery document: %w", err)}
	}

	return &doc, nil
}
