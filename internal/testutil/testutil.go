// Package testutil provides testing utilities for propcheck.
package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nomagicln/propcheck/pkg/logging"
)

// Reporter collects messages handed to failure or success callbacks.
type Reporter struct {
	mu       sync.Mutex
	messages []string
}

// Report records msg. Pass it as the callback of Run or RunOnSuccess.
func (r *Reporter) Report(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

// Messages returns a copy of the recorded messages.
func (r *Reporter) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// LogSink records log messages with their levels.
type LogSink struct {
	mu      sync.Mutex
	Entries []LogEntry
}

// LogEntry is one recorded log message.
type LogEntry struct {
	Level   logging.Level
	Message string
}

func (s *LogSink) Write(level logging.Level, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries = append(s.Entries, LogEntry{Level: level, Message: msg})
}

// Messages returns the recorded messages at level.
func (s *LogSink) Messages(level logging.Level) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, e := range s.Entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Logger returns a logger at level writing to a fresh LogSink.
func Logger(level logging.Level) (*logging.Logger, *LogSink) {
	sink := &LogSink{}
	return logging.New(level, sink), sink
}

// TempConfig writes content to a config file in a temporary directory.
func TempConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

// IsolateConfigDir points PROPCHECK_CONFIG_DIR at a temporary directory.
func IsolateConfigDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("PROPCHECK_CONFIG_DIR", dir)
	return dir
}

// MinimalConfig is a valid configuration file.
const MinimalConfig = `
minimum_tests: 25
log_level: successes
minimize: true
max_minimization_depth: 2
seed: 42
`
