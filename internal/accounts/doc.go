// Package accounts lists the QuickBooks chart of accounts and summarizes
// current balances by classification (assets, liabilities, equity, income,
// expenses).
package accounts
