// Package transactions searches purchases, payments and bills. The selected
// entity kinds are queried concurrently, merged, sorted by transaction date
// descending and truncated to the requested limit.
package transactions
