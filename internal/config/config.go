package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Environment selects the Intuit endpoints the server talks to.
type Environment string

const (
	Sandbox    Environment = "sandbox"
	Production Environment = "production"
)

// Intuit well-known discovery documents and API base URLs per environment.
const (
	sandboxDiscoveryURL    = "https://developer.api.intuit.com/.well-known/openid_sandbox_configuration"
	productionDiscoveryURL = "https://developer.api.intuit.com/.well-known/openid_configuration"
	sandboxAPIBaseURL      = "https://sandbox-quickbooks.api.intuit.com"
	productionAPIBaseURL   = "https://quickbooks.api.intuit.com"
)

// DefaultRedirectURI is used when QB_REDIRECT_URI is not set. The port must
// match the redirect URI registered with the Intuit app.
const DefaultRedirectURI = "http://localhost:3000/callback"

// ParseEnvironment parses an environment name, defaulting to sandbox for an
// empty string.
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Sandbox):
		return Sandbox, nil
	case string(Production):
		return Production, nil
	default:
		return "", fmt.Errorf("invalid environment %q (must be %q or %q)", s, Sandbox, Production)
	}
}

// DiscoveryURL returns the OpenID discovery document URL for the environment.
func (e Environment) DiscoveryURL() string {
	if e == Production {
		return productionDiscoveryURL
	}
	return sandboxDiscoveryURL
}

// APIBaseURL returns the QuickBooks data API base URL for the environment.
func (e Environment) APIBaseURL() string {
	if e == Production {
		return productionAPIBaseURL
	}
	return sandboxAPIBaseURL
}

// Config holds the OAuth client credentials and environment selection.
// It is loaded once at startup and treated as immutable afterwards.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Environment  Environment
}

// Load reads configuration from the process environment, with a .env file in
// the working directory providing defaults for unset variables. Missing
// client credentials are a fatal condition.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit .env file path, mainly for tests.
func LoadFile(envFile string) (*Config, error) {
	fileEnv := readEnvFile(envFile)

	get := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileEnv[key]
	}

	clientID := get("QB_CLIENT_ID")
	clientSecret := get("QB_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("missing QB_CLIENT_ID or QB_CLIENT_SECRET: copy .env.example to .env and fill in your Intuit app credentials")
	}

	redirectURI := get("QB_REDIRECT_URI")
	if redirectURI == "" {
		redirectURI = DefaultRedirectURI
	}

	env, err := ParseEnvironment(get("QB_ENVIRONMENT"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		Environment:  env,
	}, nil
}

// readEnvFile parses a key=value file, skipping blank lines and # comments.
// A missing or unreadable file yields an empty map.
func readEnvFile(path string) map[string]string {
	env := make(map[string]string)

	f, err := os.Open(path)
	if err != nil {
		return env
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found || strings.TrimSpace(key) == "" {
			continue
		}
		env[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return env
}
