// Package reports fetches QuickBooks financial reports (profit and loss,
// balance sheet, accounts receivable aging) and flattens their nested row
// trees into a tabular shape that is easy for an assistant to read.
package reports
