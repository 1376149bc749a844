// Package logging provides a minimal logging interface and adapters for nanoagent.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that flows, agents and the orchestrator use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging (json or text)
//   - ZerologAdapter for a human readable console format
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.New(logging.Config{Level: logging.LogLevelInfo, Format: "json"})
//	orch := orchestrator.New(func(o *orchestrator.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
