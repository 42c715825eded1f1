package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adityajha77/nebula-web-wallet/internal/config"
)

// Setup installs a JSON slog logger writing to stdout and to today's log
// file under logDir. Close the returned io.Closer on shutdown.
func Setup(levelStr, logDir string) (io.Closer, error) {
	return SetupWithWriter(levelStr, logDir, os.Stdout)
}

// SetupWithWriter is Setup with console output sent to console instead of
// stdout. CLI commands use os.Stderr so their stdout stays clean.
func SetupWithWriter(levelStr, logDir string, console io.Writer) (io.Closer, error) {
	level, err := parseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level %q: %w", levelStr, err)
	}

	file, err := openDailyFile(logDir, time.Now())
	if err != nil {
		return nil, err
	}

	handler := slog.NewJSONHandler(io.MultiWriter(console, file), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	slog.Info("logging initialized",
		"level", level.String(),
		"logDir", logDir,
		"logFile", filepath.Base(file.Name()),
	)

	if removed := CleanOldLogs(logDir, config.LogMaxAgeDays); removed > 0 {
		slog.Info("cleaned old log files", "removed", removed, "maxAgeDays", config.LogMaxAgeDays)
	}

	return file, nil
}

// LogFileName returns the daily log file name for t, e.g. nebula-2024-05-01.log.
func LogFileName(t time.Time) string {
	return config.LogFilePrefix + t.Format("2006-01-02") + ".log"
}

func openDailyFile(logDir string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}

	path := filepath.Join(logDir, LogFileName(now))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %q: %w", path, err)
	}
	return file, nil
}

// CleanOldLogs removes nebula-*.log files in logDir last modified more than
// maxAgeDays ago and returns how many were removed. Other files are left alone.
func CleanOldLogs(logDir string, maxAgeDays int) int {
	matches, err := filepath.Glob(filepath.Join(logDir, config.LogFilePrefix+"*.log"))
	if err != nil {
		slog.Warn("failed to list log files for cleanup", "logDir", logDir, "error", err)
		return 0
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	removed := 0
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			slog.Warn("failed to remove old log file", "file", path, "error", err)
			continue
		}
		removed++
	}
	return removed
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}
