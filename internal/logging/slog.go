package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Indirection for tests that capture console output.
var (
	osStdout io.Writer = os.Stdout
	osPipe             = os.Pipe
)

// SlogManager manages slog-based logging for an editing session.
type SlogManager struct {
	logger *slog.Logger
	level  slog.Level
	fanout *FanoutHandler
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// HandlerOptions returns the options shared by every text handler: the given
// level and RFC3339 UTC timestamps.
func HandlerOptions(level slog.Leveler) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}
}

// Setup initializes the logging system. Records go to the "file" sink when a
// file is given, to the "stdout" sink otherwise, and to every extra sink.
func (m *SlogManager) Setup(file io.Writer, level string, extra ...Sink) {
	m.level = parseLevel(level)
	handlerOpts := HandlerOptions(m.level)

	primary := Sink{Name: "stdout", Handler: slog.NewTextHandler(osStdout, handlerOpts)}
	if file != nil {
		primary = Sink{Name: "file", Handler: slog.NewTextHandler(file, handlerOpts)}
	}

	m.fanout = NewFanoutHandler(append([]Sink{primary}, extra...)...)
	m.logger = slog.New(m.fanout)
	m.logger.Info("Logging initialized", "level", level, "sinks", m.fanout.Sinks())
}

// SinkFailures returns the per-sink count of records that could not be
// written since Setup.
func (m *SlogManager) SinkFailures() map[string]int {
	if m.fanout == nil {
		return map[string]int{}
	}
	return m.fanout.Failures()
}

// WithContext wraps the configured logger so that every record carries the
// attributes returned by provider.
func (m *SlogManager) WithContext(provider ContextProvider) *slog.Logger {
	return slog.New(NewContextHandler(m.Logger().Handler(), provider))
}

// Level returns the level parsed by the last Setup.
func (m *SlogManager) Level() slog.Level {
	return m.level
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}

// WriteLog writes a log entry with the specified function name, data, and level.
func (m *SlogManager) WriteLog(functionName, data, level string) {
	if m.logger == nil {
		return
	}

	switch parseLevel(level) {
	case slog.LevelDebug:
		m.logger.Debug(data, "function", functionName)
	case slog.LevelWarn:
		m.logger.Warn(data, "function", functionName)
	case slog.LevelError:
		m.logger.Error(data, "function", functionName)
	default:
		m.logger.Info(data, "function", functionName)
	}
}
