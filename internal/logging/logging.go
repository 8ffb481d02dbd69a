package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// LogFileName is the debug log written to the working directory when DEBUG is set.
const LogFileName = "devfactory-mcp.log"

type AppLogger struct {
	logger *log.Logger
	debug  bool
	// stderr mirrors error level lines to stderr while logger goes to the
	// debug file. Nil in production, where logger already is stderr.
	stderr *log.Logger
}

// Options configures NewAppLoggerWithOptions.
type Options struct {
	// Debug enables debug level output to LogDir/LogFileName.
	Debug bool
	// LogDir is where the debug log goes. Defaults to the working directory.
	LogDir string
	// Output receives production logs, and error lines in debug mode.
	// Defaults to os.Stderr. Never pass os.Stdout: it carries the JSON-RPC
	// stream.
	Output io.Writer
	// Prefix is shown before every line, e.g. the server name.
	Prefix string
}

var (
	defaultLogger *AppLogger
	once          sync.Once
	defaultMu     sync.RWMutex

	// Debug log files opened by this process, by path. Every logger on the
	// same path shares one handle, so the file is truncated once and lines
	// from different loggers never overwrite each other.
	logFilesMu sync.Mutex
	logFiles   = map[string]*os.File{}
)

// GetDefault returns the default logger instance (singleton-like for convenience)
func GetDefault() *AppLogger {
	once.Do(func() {
		defaultMu.Lock()
		if defaultLogger == nil {
			defaultLogger = NewAppLogger()
		}
		defaultMu.Unlock()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the logger used by the package-level functions.
func SetDefault(logger *AppLogger) {
	once.Do(func() {})
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// Package-level convenience functions for quick logging
func Info(msg string, keyvals ...interface{}) {
	GetDefault().logger.Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...interface{}) {
	GetDefault().logger.Warn(msg, keyvals...)
}

func Error(msg string, keyvals ...interface{}) {
	al := GetDefault()
	al.logger.Error(msg, keyvals...)
	al.mirrorError(msg, keyvals...)
}

func Debug(msg string, keyvals ...interface{}) {
	if al := GetDefault(); al.debug {
		al.logger.Debug(msg, keyvals...)
	}
}

func LogPerformance(operation string, start time.Time) {
	GetDefault().LogPerformance(operation, start)
}

// NewAppLogger builds a logger from the environment: DEBUG switches to the
// debug log file, otherwise warnings and errors go to stderr.
func NewAppLogger() *AppLogger {
	logger, err := NewAppLoggerWithOptions(Options{Debug: os.Getenv("DEBUG") != ""})
	if err != nil {
		fallback, _ := NewAppLoggerWithOptions(Options{})
		fallback.Warn("Debug logging unavailable, using stderr", "error", err)
		return fallback
	}
	return logger
}

func NewAppLoggerWithOptions(opts Options) (*AppLogger, error) {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "devfactory"
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	if opts.Debug {
		// Development: Log to file, cleared once per run
		dir := opts.LogDir
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current working directory: %w", err)
			}
			dir = cwd
		}

		logPath := filepath.Join(dir, LogFileName)
		logFile, err := openLogFile(logPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create debug log file: %w", err)
		}

		logger := log.NewWithOptions(logFile, log.Options{
			ReportCaller:    true,
			CallerOffset:    1,
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          prefix,
		})
		logger.SetLevel(log.DebugLevel)
		logger.Info("Debug logging enabled", "log_file", logPath)

		errLogger := log.NewWithOptions(out, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          prefix,
		})
		errLogger.SetLevel(log.ErrorLevel)

		return &AppLogger{logger: logger, debug: true, stderr: errLogger}, nil
	}

	// Production: warnings and errors only, never on stdout
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          prefix,
	})
	logger.SetLevel(log.WarnLevel)

	return &AppLogger{logger: logger, debug: false}, nil
}

// openLogFile truncates path the first time this process opens it and hands
// out the same append-mode handle afterwards.
func openLogFile(path string) (*os.File, error) {
	logFilesMu.Lock()
	defer logFilesMu.Unlock()

	if f, ok := logFiles[path]; ok {
		return f, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	logFiles[path] = f
	return f, nil
}

// Log application events
func (al *AppLogger) Info(msg string, keyvals ...interface{}) {
	al.logger.Info(msg, keyvals...)
}

func (al *AppLogger) Warn(msg string, keyvals ...interface{}) {
	al.logger.Warn(msg, keyvals...)
}

// Error logs at error level. In debug mode the line also goes to stderr, so
// fatal problems stay visible to whoever launched the server.
func (al *AppLogger) Error(msg string, keyvals ...interface{}) {
	al.logger.Error(msg, keyvals...)
	al.mirrorError(msg, keyvals...)
}

func (al *AppLogger) Debug(msg string, keyvals ...interface{}) {
	if al.debug {
		al.logger.Debug(msg, keyvals...)
	}
}

func (al *AppLogger) mirrorError(msg string, keyvals ...interface{}) {
	if al.stderr != nil {
		al.stderr.Error(msg, keyvals...)
	}
}

// IsDebug reports whether debug output is enabled.
func (al *AppLogger) IsDebug() bool {
	return al.debug
}

// Pretty print any object (replaces spew)
func (al *AppLogger) DebugObject(name string, obj interface{}) {
	if al.debug {
		al.logger.Debug("Object dump", "name", name, "object", fmt.Sprintf("%+v", obj))
	}
}

// Log performance metrics
func (al *AppLogger) LogPerformance(operation string, start time.Time) {
	if al.debug {
		duration := time.Since(start)
		al.logger.Debug("Performance",
			"operation", operation,
			"duration", duration,
		)
	}
}

// LogCall records one handled JSON-RPC message. Failed calls are logged at
// error level so they show up without DEBUG.
func (al *AppLogger) LogCall(method, tool, id string, start time.Time, errorCode string) {
	keyvals := []interface{}{
		"method", method,
		"duration", time.Since(start),
	}
	if tool != "" {
		keyvals = append(keyvals, "tool", tool)
	}
	if id != "" {
		keyvals = append(keyvals, "id", id)
	}

	if errorCode != "" {
		keyvals = append(keyvals, "error_code", errorCode)
		al.logger.Error("MCP call failed", keyvals...)
		al.mirrorError("MCP call failed", keyvals...)
		return
	}
	if al.debug {
		al.logger.Debug("MCP call", keyvals...)
	}
}

// Testing Helper - NewTestLogger creates a logger that writes to a buffer for testing
func NewTestLogger() (*AppLogger, *bytes.Buffer) {
	var buf bytes.Buffer

	logger := log.NewWithOptions(&buf, log.Options{
		ReportTimestamp: false, // Easier to test without timestamps
		ReportCaller:    false,
		Prefix:          "Test",
	})
	logger.SetLevel(log.DebugLevel)

	return &AppLogger{
		logger: logger,
		debug:  true,
	}, &buf
}
