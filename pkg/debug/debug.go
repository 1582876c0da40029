package debug

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarning
	LevelError
)

var (
	mu sync.RWMutex
	// IsEnabled controls whether messages are output
	IsEnabled bool
	// CurrentLevel is the minimum level of messages to output
	CurrentLevel LogLevel
	logger       zerolog.Logger
	levelMap     = map[string]LogLevel{
		"DEBUG":   LevelDebug,
		"INFO":    LevelInfo,
		"WARNING": LevelWarning,
		"WARN":    LevelWarning,
		"ERROR":   LevelError,
	}
	zerologLevels = map[LogLevel]zerolog.Level{
		LevelDebug:   zerolog.DebugLevel,
		LevelInfo:    zerolog.InfoLevel,
		LevelWarning: zerolog.WarnLevel,
		LevelError:   zerolog.ErrorLevel,
	}
)

func init() {
	zerolog.TimeFieldFormat = "2006-01-02 15:04:05.000"
	configure(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05.000"})
}

func configure(w io.Writer) {
	debugEnv := os.Getenv("DEBUG")
	enabled := debugEnv == "true" || debugEnv == "1"

	level := LevelInfo
	if l, ok := levelMap[strings.ToUpper(os.Getenv("LOG_LEVEL"))]; ok {
		level = l
	}

	mu.Lock()
	IsEnabled = enabled
	CurrentLevel = level
	logger = zerolog.New(w).With().Timestamp().Logger()
	mu.Unlock()
}

// Init points the logger at w and forces logging on or off regardless of DEBUG.
func Init(w io.Writer, enabled bool) {
	configure(w)
	mu.Lock()
	IsEnabled = enabled
	mu.Unlock()
}

// Reinitialize re-reads DEBUG and LOG_LEVEL, typically after a .env file was loaded.
func Reinitialize() {
	configure(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05.000"})
	mu.RLock()
	enabled, level := IsEnabled, CurrentLevel
	mu.RUnlock()
	if enabled {
		Info("Debug logging initialized - Enabled: %v, Level: %d", enabled, level)
	}
}

// Log writes a message at the given level if logging is enabled and the level passes the filter.
func Log(level LogLevel, format string, v ...interface{}) {
	mu.RLock()
	enabled, minLevel, l := IsEnabled, CurrentLevel, logger
	mu.RUnlock()

	if !enabled || level < minLevel {
		return
	}

	event := l.WithLevel(zerologLevels[level])
	if pc, file, line, ok := runtime.Caller(2); ok {
		event = event.Str("caller", fmt.Sprintf("%s:%d", shortFile(file), line))
		if fn := runtime.FuncForPC(pc); fn != nil {
			event = event.Str("func", fn.Name())
		}
	}
	event.Msg(fmt.Sprintf(format, v...))
}

func shortFile(file string) string {
	if idx := strings.LastIndex(file, "/internal/"); idx != -1 {
		return file[idx+1:]
	}
	if idx := strings.LastIndex(file, "/pkg/"); idx != -1 {
		return file[idx+1:]
	}
	return file
}

// Debug logs a debug level message
func Debug(format string, v ...interface{}) {
	Log(LevelDebug, format, v...)
}

// Info logs an info level message
func Info(format string, v ...interface{}) {
	Log(LevelInfo, format, v...)
}

// Warning logs a warning level message
func Warning(format string, v ...interface{}) {
	Log(LevelWarning, format, v...)
}

// Error logs an error level message
func Error(format string, v ...interface{}) {
	Log(LevelError, format, v...)
}

// Fatal logs the message unconditionally and exits.
func Fatal(format string, v ...interface{}) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.WithLevel(zerolog.FatalLevel).Msg(fmt.Sprintf(format, v...))
	os.Exit(1)
}
