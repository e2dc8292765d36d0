// Package logging provides structured logging utilities built on log/slog.
//
// The MCP stdio transport owns stdout, so logs are written to stderr as
// human-readable text and, by default, to a JSON-lines file under the user
// cache directory. The file copy preserves Intuit correlation ids
// (intuit_tid) so failed API calls can be matched to Intuit support logs.
//
// The package defines canonical attribute keys (operation, tool, endpoint,
// realm_id, intuit_tid, ...) and helper constructors so log fields stay
// consistent across the codebase.
package logging
