// Package logger provides a structured logging facility based on Zap.
//
// Two sinks are supported: a JSON file that acts as the audit log for
// reconciliation runs, and an optional console sink on stderr enabled by
// the --verbose flag. Both sinks receive the same entries.
//
// # Run Correlation
//
// Each invocation tags its entries with a run_id via WithRunID so that
// overlapping log files from scheduled runs can still be separated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console or json (console sink only; the file is always json)
//   - File: audit log path, empty to log to stderr only
package logger
