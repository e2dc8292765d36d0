// Package invoices lists QuickBooks invoices with customer, date-range and
// payment-status filters. Overdue filtering is applied in memory because
// the query language cannot compare against the current date.
package invoices
