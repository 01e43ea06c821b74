// Package logging provides config-driven categorized file-based logging for
// the Eventually Yours terminal client. Logs are written to <home>/logs/ with
// a separate file per category. Logging is controlled by the debug flag in
// the app config - when false, no logs are written.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category represents a log category/subsystem.
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config resolution
	CategorySession Category = "session" // Session identity store
	CategoryGateway Category = "gateway" // Backend HTTP calls
	CategoryProfile Category = "profile" // Profile state, validation
	CategoryImport  Category = "import"  // Export/import codec
	CategoryFlow    Category = "flow"    // Page navigation decisions
	CategoryUI      Category = "ui"      // TUI lifecycle
)

// Logger wraps a standard logger with category and file output.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	logsDir   string
	debugMode bool
	configMu  sync.RWMutex
	logLevel  int
)

// Log levels
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Initialize sets up the logging directory. Should be called once at startup
// with the app home directory (e.g. ~/.eventually) and the configured level.
// When debug is false this is a silent no-op and all loggers discard.
func Initialize(home string, debug bool, level string) error {
	if home == "" {
		return fmt.Errorf("app home path required")
	}

	configMu.Lock()
	debugMode = debug
	switch level {
	case "debug":
		logLevel = LevelDebug
	case "warn", "warning":
		logLevel = LevelWarn
	case "error":
		logLevel = LevelError
	default:
		logLevel = LevelInfo
	}
	configMu.Unlock()

	if !debug {
		return nil
	}

	logsDir = filepath.Join(home, "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("=== Eventually Yours logging initialized ===")
	boot.Info("Logs directory: %s", logsDir)
	boot.Info("Log level: %s", level)

	return nil
}

// IsDebugMode returns whether debug logging is enabled.
func IsDebugMode() bool {
	configMu.RLock()
	defer configMu.RUnlock()
	return debugMode
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled.
func Get(category Category) *Logger {
	if !IsDebugMode() || logsDir == "" {
		return &Logger{category: category}
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}

	// Date prefix for easy rotation
	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", date, category))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", logPath, err)
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l

	return l
}

// Debug logs a debug message (only if level <= debug).
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelDebug {
		return
	}
	l.logger.Printf("[DEBUG] %s", fmt.Sprintf(format, args...))
}

// Info logs an informational message (only if level <= info).
func (l *Logger) Info(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelInfo {
		return
	}
	l.logger.Printf("[INFO] %s", fmt.Sprintf(format, args...))
}

// Warn logs a warning message (only if level <= warn).
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelWarn {
		return
	}
	l.logger.Printf("[WARN] %s", fmt.Sprintf(format, args...))
}

// Error logs an error message (always written when logging is active).
func (l *Logger) Error(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[ERROR] %s", fmt.Sprintf(format, args...))
}

// Close flushes and closes all open log files. Safe to call multiple times.
func Close() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for cat, l := range loggers {
		if l.file != nil {
			_ = l.file.Close()
		}
		delete(loggers, cat)
	}
}

// Convenience helpers keep call sites short.

func SessionDebug(format string, args ...interface{}) { Get(CategorySession).Debug(format, args...) }
func SessionInfo(format string, args ...interface{})  { Get(CategorySession).Info(format, args...) }
func GatewayDebug(format string, args ...interface{}) { Get(CategoryGateway).Debug(format, args...) }
func GatewayError(format string, args ...interface{}) { Get(CategoryGateway).Error(format, args...) }
func FlowInfo(format string, args ...interface{})     { Get(CategoryFlow).Info(format, args...) }
func ImportInfo(format string, args ...interface{})   { Get(CategoryImport).Info(format, args...) }
func ImportWarn(format string, args ...interface{})   { Get(CategoryImport).Warn(format, args...) }
