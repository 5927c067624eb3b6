// Package logging provides a structured logging system for attune with unified
// log handling and level filtering.
//
// This package implements a logging system built on Go's standard slog package,
// providing consistent logging behavior with structured output.
//
// # Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about application operation
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// # Usage
//
//	import "attune/pkg/logging"
//
//	// Initialize with Info level logging to stderr
//	logging.Init(logging.LevelInfo, os.Stderr)
//
//	// Log messages
//	logging.Info("Bootstrap", "Application starting up")
//	logging.Debug("Config", "Loaded manifest from %s", manifestPath)
//	logging.Warn("Secrets", "Secret %s is not managed by attune", name)
//	logging.Error("Planner", err, "Failed to resolve extension version")
//
// # Subsystem Organization
//
// Logs are organized by subsystem to enable filtering and categorization:
//
//   - **Bootstrap**: Application initialization and startup
//   - **Config**: Manifest loading and validation
//   - **Planner**: Extension instance planning (want/have)
//   - **Resolver**: Extension version resolution
//   - **Secrets**: Secret lifecycle and pruning
//   - **Watcher**: Manifest file change detection
//
// # Thread Safety
//
// The package-level logging functions are safe for concurrent use once Init
// has been called; slog handlers serialize writes internally.
package logging
