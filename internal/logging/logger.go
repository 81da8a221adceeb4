package logging

// Structured logging for ddcdec

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Environment overrides applied by NewLoggerFromEnv.
const (
	EnvLogLevel   = "DDCDEC_LOG_LEVEL"
	EnvLogNoColor = "DDCDEC_LOG_NOCOLOR"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelError
	LogLevelInfo
	LogLevelVerbose
	LogLevelDebug
)

// String returns the level name accepted by ParseLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelSilent:
		return "silent"
	case LogLevelError:
		return "error"
	case LogLevelInfo:
		return "info"
	case LogLevelVerbose:
		return "verbose"
	case LogLevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel maps a level name to a LogLevel.
func ParseLevel(raw string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "silent", "off", "none", "disabled":
		return LogLevelSilent, nil
	case "error":
		return LogLevelError, nil
	case "", "info":
		return LogLevelInfo, nil
	case "verbose":
		return LogLevelVerbose, nil
	case "debug", "trace":
		return LogLevelDebug, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level %q", raw)
	}
}

// Logger provides leveled logging to the console and an optional JSON log file.
type Logger struct {
	mu      sync.Mutex
	level   LogLevel
	noColor bool
	file    *os.File
	fileLog zerolog.Logger
	console zerolog.Logger
}

// NewLogger creates a new logger
func NewLogger(level LogLevel, logFile string) (*Logger, error) {
	return NewLoggerWithOptions(level, logFile, false)
}

// NewLoggerWithOptions creates a logger whose console output is a zerolog
// console writer, uncolored when noColor is set.
func NewLoggerWithOptions(level LogLevel, logFile string, noColor bool) (*Logger, error) {
	l := &Logger{
		level:   level,
		noColor: noColor,
		fileLog: zerolog.Nop(),
	}
	l.console = l.newConsole(os.Stderr)

	// Open log file if specified
	if logFile != "" {
		file, err := os.Create(logFile)
		if err != nil {
			return nil, fmt.Errorf("create log file: %w", err)
		}
		l.file = file
		l.fileLog = zerolog.New(file).With().Timestamp().Logger()
	}

	return l, nil
}

// NewLoggerFromEnv creates a logger, letting DDCDEC_LOG_LEVEL and
// DDCDEC_LOG_NOCOLOR override level and color.
func NewLoggerFromEnv(level LogLevel, logFile string) (*Logger, error) {
	if raw := os.Getenv(EnvLogLevel); raw != "" {
		if lvl, err := ParseLevel(raw); err == nil {
			level = lvl
		}
	}
	noColor := false
	if v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(EnvLogNoColor))); err == nil {
		noColor = v
	}
	return NewLoggerWithOptions(level, logFile, noColor)
}

func (l *Logger) newConsole(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    l.noColor,
	}).With().Timestamp().Logger()
}

// SetOutput redirects console output. A nil writer is ignored.
func (l *Logger) SetOutput(w io.Writer) {
	if l == nil || w == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = l.newConsole(w)
}

// Close closes the logger and flushes all data
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.fileLog = zerolog.Nop()
		return err
	}
	return nil
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.logf(LogLevelError, format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.logf(LogLevelInfo, format, v...)
}

// Verbose logs a verbose message
func (l *Logger) Verbose(format string, v ...interface{}) {
	l.logf(LogLevelVerbose, format, v...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.logf(LogLevelDebug, format, v...)
}

func (l *Logger) logf(lvl LogLevel, format string, v ...interface{}) {
	if l == nil || l.GetLevel() < lvl {
		return
	}
	l.write(lvl, fmt.Sprintf(format, v...))
}

// write writes a message to the appropriate outputs.
// The file gets everything at or below the level; the console only shows
// errors unless the logger is verbose.
func (l *Logger) write(lvl LogLevel, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	zl := zerologLevel(lvl)
	l.fileLog.WithLevel(zl).Str("verbosity", lvl.String()).Msg(msg)
	if lvl == LogLevelError || l.level >= LogLevelVerbose {
		l.console.WithLevel(zl).Msg(msg)
	}
}

func zerologLevel(lvl LogLevel) zerolog.Level {
	switch lvl {
	case LogLevelError:
		return zerolog.ErrorLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current logging level
func (l *Logger) GetLevel() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// LogTransaction logs a finalized DDC transaction.
func (l *Logger) LogTransaction(protocol, direction string, offset byte, hasOffset bool, data []byte, fields int) {
	off := "-"
	if hasOffset {
		off = fmt.Sprintf("0x%02X", offset)
	}
	l.Verbose("%s %s offset=%s bytes=%d fields=%d", protocol, direction, off, len(data), fields)
	l.LogHex("  data", data)
}

// LogStartup logs startup information
func (l *Logger) LogStartup(inputs []string, format, configPath string) {
	l.Info("Starting ddcdec")
	l.Verbose("  Inputs: %s", strings.Join(inputs, ", "))
	l.Verbose("  Format: %s", format)
	l.Verbose("  Config: %s", configPath)
}

// LogHex logs hex data (for debug level)
func (l *Logger) LogHex(label string, data []byte) {
	if l == nil || l.GetLevel() < LogLevelDebug {
		return
	}
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	l.Debug("%s: %s", label, strings.Join(parts, " "))
}
