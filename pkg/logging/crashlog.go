package logging

import (
	"fmt"
	"log/slog"
	"os"
)

// CrashLog is a JSON file sink for trigger-intent records. The file is
// opened with O_SYNC: every write hits stable storage before returning, so
// the record naming the fault about to be injected survives the crash that
// follows it.
type CrashLog struct {
	file    *os.File
	handler slog.Handler
}

// OpenCrashLog opens (or creates) the crash log at path.
func OpenCrashLog(path string, level Level) (*CrashLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND|os.O_SYNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open crash log: %w", err)
	}
	return &CrashLog{
		file:    f,
		handler: slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}),
	}, nil
}

// Handler returns the slog.Handler writing to the crash log.
func (c *CrashLog) Handler() slog.Handler { return c.handler }

// Close closes the underlying file.
func (c *CrashLog) Close() error { return c.file.Close() }
