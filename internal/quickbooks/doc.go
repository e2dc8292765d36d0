// Package quickbooks provides the authenticated client for the QuickBooks
// Online data API.
//
// All outbound calls funnel through Client.Do, which loads the persisted
// token set, transparently refreshes an expired access token, scopes the URL
// to the authorized realm (company) and converts non-success responses into
// *APIError values carrying the Intuit correlation id. Query-language
// statements are built with QueryBuilder, which escapes all string literals,
// and executed through Client.Query.
//
// The package also defines the typed entity structures (Customer, Invoice,
// Account, Purchase, Payment, Bill) decoded at the API boundary.
package quickbooks
