package quickbooks

import (
	"fmt"
)

// APIError is a non-success response from the QuickBooks data API. The
// intuit_tid correlation id, when present, lets Intuit support match the
// failure to their server-side logs.
type APIError struct {
	Status    int
	Body      string
	IntuitTID string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("QuickBooks API error (%d): %s", e.Status, e.Body)
	if e.IntuitTID != "" {
		msg += fmt.Sprintf(" [intuit_tid: %s]", e.IntuitTID)
	}
	return msg
}

// TokenRefreshError is a rejected refresh-token grant. The stale token set
// stays on disk when this is returned.
type TokenRefreshError struct {
	Status int
	Body   string
}

func (e *TokenRefreshError) Error() string {
	return fmt.Sprintf("token refresh failed (%d): %s", e.Status, e.Body)
}
