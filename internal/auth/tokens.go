package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExpiryBuffer is subtracted from the token expiry when checking freshness,
// so a token is proactively refreshed before it expires mid-request.
const ExpiryBuffer = 5 * time.Minute

// TokenSet is the persisted OAuth token state for a realm. The JSON field
// names match the token file written by earlier releases; expires_at is
// Unix milliseconds.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RealmID      string `json:"realm_id"`
}

// Expiry returns the absolute expiry instant.
func (t *TokenSet) Expiry() time.Time {
	return time.UnixMilli(t.ExpiresAt)
}

// SetExpiry records the absolute expiry instant.
func (t *TokenSet) SetExpiry(at time.Time) {
	t.ExpiresAt = at.UnixMilli()
}

// Expired reports whether the token should be refreshed at the given time.
// The check is inclusive: exactly ExpiryBuffer before expiry counts as
// expired.
func (t *TokenSet) Expired(now time.Time) bool {
	return !now.Before(t.Expiry().Add(-ExpiryBuffer))
}

// Store persists a single TokenSet as a JSON file. A missing file, an empty
// object, or malformed content all read back as "never authorized"; writes
// go through a temp file and rename so readers never observe a partial
// token set.
type Store struct {
	path string
}

// DefaultTokenFile returns the default token file path inside the user
// cache directory.
func DefaultTokenFile() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "quickbooks-mcp", "tokens.json"), nil
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the token file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted token set. It returns (nil, nil) when the file is
// missing, empty, or unparseable; those states are indistinguishable from
// "never authorized" and are not errors.
func (s *Store) Load() (*TokenSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil
	}

	var tokens TokenSet
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, nil
	}
	if tokens.AccessToken == "" {
		return nil, nil
	}
	return &tokens, nil
}

// Save overwrites the persisted token set. Last write wins.
func (s *Store) Save(tokens *TokenSet) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tokens: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace token file: %w", err)
	}
	return nil
}

// Clear resets the persisted state to an empty object, so a subsequent Load
// behaves as "never authorized".
func (s *Store) Clear() error {
	if _, err := os.Stat(s.path); err != nil {
		return nil
	}
	if err := os.WriteFile(s.path, []byte("{}"), 0o600); err != nil {
		return fmt.Errorf("failed to clear token file: %w", err)
	}
	return nil
}
