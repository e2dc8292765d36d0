// Package customers lists and fetches QuickBooks customer records through
// the query endpoint.
package customers
