// Package logging provides structured logging configuration for faultd.
//
// This package wraps log/slog to give every component the same logging
// surface. Besides levels and formats it provides a crash-log sink: a file
// handler whose writes are synchronous, so the record announcing a fault
// injection reaches stable storage before the fault kills the process.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//	logger.Info("injecting fault", "kind", "PANIC")
//
// Components should accept a *slog.Logger in their constructor or via a
// setter. If no logger is provided, use logging.Nop().
package logging
