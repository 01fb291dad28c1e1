// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance supporting console output for
// interactive CLI runs and JSON output for captured runs.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Provisioning started")
package logger
