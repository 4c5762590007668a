// Package logging provides the verbosity-gated text sink used by test runs.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"
)

// Level is the verbosity of a run. Messages are emitted when their level is at
// or below the configured level.
type Level int

const (
	None Level = iota
	Failures
	Successes
	All
)

var levelNames = map[Level]string{
	None:      "none",
	Failures:  "failures",
	Successes: "successes",
	All:       "all",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for level, name := range levelNames {
		if name == needle {
			return level, nil
		}
	}
	return None, fmt.Errorf("unknown log level %q (expected none, failures, successes or all)", s)
}

// MarshalYAML implements yaml.Marshaler.
func (l Level) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Level) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Sink receives messages that passed the level gate.
type Sink interface {
	Write(level Level, msg string)
}

type writerSink struct {
	w io.Writer
}

// WriterSink writes one line per message to w.
func WriterSink(w io.Writer) Sink {
	return &writerSink{w: w}
}

func (s *writerSink) Write(_ Level, msg string) {
	_, _ = fmt.Fprintln(s.w, msg)
}

type slogSink struct {
	logger *slog.Logger
}

// SlogSink forwards messages to a structured logger. failures map to Warn,
// successes to Info and all to Debug.
func SlogSink(logger *slog.Logger) Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogSink{logger: logger}
}

func (s *slogSink) Write(level Level, msg string) {
	s.logger.Log(context.Background(), slogLevel(level), msg, slog.String("verbosity", level.String()))
}

func slogLevel(level Level) slog.Level {
	switch level {
	case Failures:
		return slog.LevelWarn
	case Successes:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// Logger gates messages by level before handing them to a Sink.
type Logger struct {
	level  Level
	sink   Sink
	prefix string
}

// New creates a Logger.
func New(level Level, sink Sink) *Logger {
	return &Logger{level: level, sink: sink}
}

// Discard returns a Logger that emits nothing.
func Discard() *Logger {
	return &Logger{level: None}
}

// Level returns the configured verbosity.
func (l *Logger) Level() Level {
	if l == nil {
		return None
	}
	return l.level
}

// Enabled reports whether a message at level would be emitted.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && l.sink != nil && level != None && level <= l.level
}

// Logf emits a formatted message at level.
func (l *Logger) Logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.sink.Write(level, l.prefix+fmt.Sprintf(format, args...))
}

// Indent returns a Logger that prefixes every message with depth levels of indentation.
func (l *Logger) Indent(depth int) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{level: l.level, sink: l.sink, prefix: l.prefix + strings.Repeat("  ", depth)}
}

// WithLevel returns a copy of l gated at level.
func (l *Logger) WithLevel(level Level) *Logger {
	if l == nil {
		return &Logger{level: level}
	}
	return &Logger{level: level, sink: l.sink, prefix: l.prefix}
}
