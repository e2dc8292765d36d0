package auth

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when no token set is stored on disk.
// It is a distinct, user-actionable condition: run `quickbooks-mcp auth`.
var ErrNotAuthenticated = errors.New("not authenticated with QuickBooks: run 'quickbooks-mcp auth' to authorize")

// DiscoveryError indicates that the OpenID discovery document could not be
// fetched or parsed.
type DiscoveryError struct {
	URL    string
	Status int
	Err    error
}

func (e *DiscoveryError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to fetch discovery document from %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("failed to fetch discovery document from %s: %v", e.URL, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// AuthorizationError indicates the interactive authorization flow was
// rejected or did not complete.
type AuthorizationError struct {
	Reason string
	Err    error
}

func (e *AuthorizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authorization failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authorization failed: %s", e.Reason)
}

func (e *AuthorizationError) Unwrap() error {
	return e.Err
}
