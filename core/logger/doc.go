// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports development (console, colored
// levels) and production (JSON) output.
//
// # Run Correlation
//
// Every reconciliation run gets a UUID. WithRun attaches it, together with the vendor
// and filename, to all entries written during the run, so console output can be matched
// to the run section of the run log.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	l := logger.WithRun(log, runID, "acme", "march")
//	l.Info("Run started")
package logger
