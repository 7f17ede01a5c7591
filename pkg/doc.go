// Package pkg provides shared utilities for the softkeypad packages.
//
// This package contains common functionality used by the matrix scanner,
// the debounce/repeat engine, the dispatch loop and the transports:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel errors for construction and transport failures
//   - Component identifiers for log filtering
//
// # Logging
//
// The logging subsystem wraps [log/slog] with keypad-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentEngine, "key released", "char", "5")
//
// # Errors
//
// Errors are sentinel values, usually wrapped with context:
//
//	if errors.Is(err, pkg.ErrPinNotFound) {
//	    // Fix the pin names in the configuration
//	}
package pkg
