// Package logging provides structured logging using bolt.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/felixgeelhaar/bolt/v3"
	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
)

var (
	mu            sync.RWMutex
	defaultLogger *bolt.Logger
	once          sync.Once
)

// Config configures the logger.
type Config struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `yaml:"level" json:"level"`

	// Format is the output format (json or console).
	Format string `yaml:"format" json:"format"`

	// Output is the output destination. Defaults to stdout.
	Output io.Writer `yaml:"-" json:"-"`
}

// DefaultConfig returns a console logger at info level.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: os.Stdout,
	}
}

// ProductionConfig returns a JSON logger at info level.
func ProductionConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Output: os.Stdout,
	}
}

// Levels lists the accepted level names
var Levels = []string{"trace", "debug", "info", "warn", "error"}

// Formats lists the accepted output formats
var Formats = []string{"json", "console"}

func parseLevel(s string) bolt.Level {
	switch s {
	case "trace":
		return bolt.TRACE
	case "debug":
		return bolt.DEBUG
	case "info":
		return bolt.INFO
	case "warn":
		return bolt.WARN
	case "error":
		return bolt.ERROR
	default:
		return bolt.INFO
	}
}

// New builds a logger from cfg without touching the default logger.
func New(cfg Config) *bolt.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	var handler bolt.Handler
	if cfg.Format == "json" {
		handler = bolt.NewJSONHandler(output)
	} else {
		handler = bolt.NewConsoleHandler(output)
	}

	return bolt.New(handler).SetLevel(parseLevel(cfg.Level))
}

// Init initializes the default logger once.
func Init(cfg Config) {
	once.Do(func() {
		Use(New(cfg))
	})
}

// Use replaces the default logger. Tests use it to capture output.
func Use(logger *bolt.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// Get returns the default logger, initializing if necessary.
func Get() *bolt.Logger {
	mu.RLock()
	logger := defaultLogger
	mu.RUnlock()
	if logger != nil {
		return logger
	}

	Init(DefaultConfig())

	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetLevel changes the log level of the default logger.
func SetLevel(level string) {
	Get().SetLevel(parseLevel(level))
}

// LogEvent wraps a bolt.Event so Fields can be applied.
type LogEvent struct {
	event *bolt.Event
}

// Add applies a field to the event and returns the wrapper for chaining.
func (l *LogEvent) Add(f Field) *LogEvent {
	l.event = f(l.event)
	return l
}

// Str adds a string field.
func (l *LogEvent) Str(key, value string) *LogEvent {
	l.event = l.event.Str(key, value)
	return l
}

// Int adds an int field.
func (l *LogEvent) Int(key string, value int) *LogEvent {
	l.event = l.event.Int(key, value)
	return l
}

// Msg sends the log event with a message.
func (l *LogEvent) Msg(msg string) {
	l.event.Msg(msg)
}

// Trace returns a trace level event.
func Trace() *LogEvent {
	return &LogEvent{event: Get().Trace()}
}

// Debug returns a debug level event.
func Debug() *LogEvent {
	return &LogEvent{event: Get().Debug()}
}

// Info returns an info level event.
func Info() *LogEvent {
	return &LogEvent{event: Get().Info()}
}

// Warn returns a warn level event.
func Warn() *LogEvent {
	return &LogEvent{event: Get().Warn()}
}

// Error returns an error level event.
func Error() *LogEvent {
	return &LogEvent{event: Get().Error()}
}

// GRPCLogger adapts the default logger to the go-grpc-middleware logging
// interceptor. Fields arrive as alternating keys and values.
func GRPCLogger() grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(_ context.Context, level grpc_logging.Level, msg string, fields ...any) {
		var ev *LogEvent
		switch level {
		case grpc_logging.LevelDebug:
			ev = Debug()
		case grpc_logging.LevelWarn:
			ev = Warn()
		case grpc_logging.LevelError:
			ev = Error()
		default:
			ev = Info()
		}

		for i := 0; i+1 < len(fields); i += 2 {
			ev = ev.Str(fmt.Sprint(fields[i]), fmt.Sprint(fields[i+1]))
		}
		ev.Msg(msg)
	})
}
