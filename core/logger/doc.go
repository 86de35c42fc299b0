// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for the reconcile command and the HTTP server.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID of a request from a Fiber context and attaches
// it to the log entry, so every line written while handling an upload can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Reconciliation finished", zap.Int("stock_changes", report.StockChanges))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Upload rejected", zap.Error(err))
package logger
